// Command schema writes the JSON schema of the sentiscope config, pkg/config embeds its output
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/sentiscope/sentiscope/pkg/config"
)

//go:generate go run . ../../pkg/config/schema.json

func main() {
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("failed to generate schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal schema: %v", err)
	}

	if err := os.WriteFile(outputPath, append(data, '\n'), 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema file: %v", err)
	}

	fmt.Printf("schema for %d config sections written to %s\n", countSections(data), outputPath)
}

// countSections returns the number of top level config properties in a generated schema
func countSections(data []byte) int {
	var doc struct {
		Defs map[string]struct {
			Properties map[string]json.RawMessage `json:"properties"`
		} `json:"$defs"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0
	}
	return len(doc.Defs["Config"].Properties)
}
