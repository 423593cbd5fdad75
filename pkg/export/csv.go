// Package export renders daily aggregates as CSV and parses such files back.
// Column order and decimal precision are a stable external contract.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// Header is the first CSV line
var Header = []string{
	"Date", "Subreddit", "Sentiment Score", "Volume", "Positive Count", "Neutral Count",
	"Negative Count", "Positive %", "Negative %", "Avg Confidence",
}

// Row is one parsed CSV line, numbers carry the precision written to the file
type Row struct {
	Date               string
	Subreddit          string
	SentimentScore     decimal.Decimal
	Volume             int
	PositiveCount      int
	NeutralCount       int
	NegativeCount      int
	PositivePercentage decimal.Decimal
	NegativePercentage decimal.Decimal
	AverageConfidence  decimal.Decimal
}

// WriteCSV writes the header and one row per aggregate in the given order
func WriteCSV(w io.Writer, aggs []domain.DailyAggregate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, a := range aggs {
		if err := cw.Write(formatRow(a)); err != nil {
			return fmt.Errorf("write csv row %s/%s: %w", a.Subreddit, a.Date, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FileName returns the attachment name for an export of subreddit over timeRange
func FileName(subreddit string, timeRange domain.TimeRange) string {
	return fmt.Sprintf("sentiment-%s-%s.csv", subreddit, timeRange)
}

func formatRow(a domain.DailyAggregate) []string {
	return []string{
		a.Date,
		a.Subreddit,
		decimal.NewFromFloat(a.SentimentScore).StringFixed(3),
		strconv.Itoa(a.TotalCount),
		strconv.Itoa(a.PositiveCount),
		strconv.Itoa(a.NeutralCount),
		strconv.Itoa(a.NegativeCount),
		percent(a.PositiveCount, a.TotalCount),
		percent(a.NegativeCount, a.TotalCount),
		decimal.NewFromFloat(a.AverageConfidence).StringFixed(3),
	}
}

// percent formats part/total as a percentage with one decimal, 0.0% for zero total
func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	p := decimal.NewFromInt(int64(part)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(total)))
	return p.StringFixed(1) + "%"
}

// ParseCSV reads a file produced by WriteCSV
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty csv")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range Header {
		if header[i] != h {
			return nil, fmt.Errorf("unexpected column %d %q, want %q", i+1, header[i], h)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("parse csv line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	row := Row{Date: rec[0], Subreddit: rec[1]}
	if _, err := domain.ParseDay(row.Date); err != nil {
		return Row{}, err
	}

	var err error
	if row.SentimentScore, err = decimal.NewFromString(rec[2]); err != nil {
		return Row{}, fmt.Errorf("sentiment score %q: %w", rec[2], err)
	}
	ints := []*int{&row.Volume, &row.PositiveCount, &row.NeutralCount, &row.NegativeCount}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(rec[3+i]); err != nil {
			return Row{}, fmt.Errorf("column %q: %w", Header[3+i], err)
		}
	}
	if row.PositivePercentage, err = parsePercent(rec[7]); err != nil {
		return Row{}, err
	}
	if row.NegativePercentage, err = parsePercent(rec[8]); err != nil {
		return Row{}, err
	}
	if row.AverageConfidence, err = decimal.NewFromString(rec[9]); err != nil {
		return Row{}, fmt.Errorf("average confidence %q: %w", rec[9], err)
	}
	return row, nil
}

func parsePercent(s string) (decimal.Decimal, error) {
	if !strings.HasSuffix(s, "%") {
		return decimal.Decimal{}, fmt.Errorf("percentage %q has no %% suffix", s)
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("percentage %q: %w", s, err)
	}
	return d, nil
}
