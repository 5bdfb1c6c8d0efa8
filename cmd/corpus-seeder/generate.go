package main

import (
	"math"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"gitlab.com/lexiscan/contract-extraction/lib/document"
)

// Synthetic contract sentences with enough variation for the recogniser to
// learn from. Placeholders are filled from the pools below with rune-exact
// span offsets.
var templates = []string{
	"This Confidentiality Agreement is entered into on {date}, between {party1} and {party2}. The penalty amount for breach is {amount} and falls within the jurisdiction of the state of {jurisdiction}.",
	"This Agreement, dated {date}, is between {party1} and {party2}. The total investment is {amount} to be governed by the laws of {jurisdiction}.",
	"Signed on {date}, {party1} agrees to pay {amount} to {party2} under the jurisdiction of {jurisdiction}.",
	"The contract was executed on {date} by {party1} and {party2}. Total damages are capped at {amount} subject to the courts of {jurisdiction}.",
	"On {date}, an agreement was formed between {party1} and {party2} involving {amount}. Dispute resolution shall occur in {jurisdiction}.",
	"Effective as of {date}, {party1} shall deliver to {party2} the sum of {amount}. This document is governed by {jurisdiction} laws.",
	"Between {party1} and {party2}, signed {date}, for the value of {amount}. Jurisdiction is set in {jurisdiction}.",
	"Made on {date}. {party1} will compensate {party2} with {amount}, compliant with {jurisdiction} state laws.",
}

var dates = []string{
	"October 12, 2023", "January 1, 2024", "15th March 2022", "2021-05-20",
	"November 5, 2019", "2nd of July, 2020", "12/12/2022", "01-10-2023",
}

var parties = []string{
	"Acme Corp", "John Doe", "Tech Solutions Inc.", "Global Ventures LLC",
	"Beta Corp", "Alpha Inc.", "Cyberdyne Systems", "Skynet", "Omega LLC",
	"Jane Smith", "Initech", "Umbrella Corp", "Stark Industries", "Wayne Enterprises",
}

var amounts = []string{
	"$50,000.00", "€5,000,000", "$10,000", "£2,000,000", "$1,000",
	"$100,500", "€35,000", "500,000 GBP",
}

var jurisdictions = []string{
	"New York", "California", "Texas", "London", "Delaware", "Nevada",
	"Florida", "Ontario",
}

var placeholderLabels = map[string]document.Label{
	"{date}":         document.LabelDate,
	"{party1}":       document.LabelParty,
	"{party2}":       document.LabelParty,
	"{amount}":       document.LabelAmount,
	"{jurisdiction}": document.LabelJurisdiction,
}

// fill substitutes placeholder values into a template, tracking rune offsets
// so every substituted value gets a boundary-exact span.
func fill(template string, values map[string]string) (string, []document.Span) {
	var builder strings.Builder
	var spans []document.Span

	position := 0
	remaining := template
	for remaining != "" {
		open := strings.IndexByte(remaining, '{')
		if open == -1 {
			builder.WriteString(remaining)
			break
		}
		closing := strings.IndexByte(remaining[open:], '}')
		if closing == -1 {
			builder.WriteString(remaining)
			break
		}

		placeholder := remaining[open : open+closing+1]
		value, ok := values[placeholder]
		label, known := placeholderLabels[placeholder]
		if !ok || !known {
			builder.WriteString(remaining[:open+closing+1])
			position += utf8.RuneCountInString(remaining[:open+closing+1])
			remaining = remaining[open+closing+1:]
			continue
		}

		builder.WriteString(remaining[:open])
		position += utf8.RuneCountInString(remaining[:open])

		builder.WriteString(value)
		valueLen := utf8.RuneCountInString(value)
		spans = append(spans, document.Span{Start: position, End: position + valueLen, Label: label})
		position += valueLen

		remaining = remaining[open+closing+1:]
	}

	return builder.String(), spans
}

// generate builds one synthetic annotated contract record.
func generate(rng *rand.Rand) document.AnnotationRecord {
	party1 := parties[rng.Intn(len(parties))]
	party2 := party1
	for party2 == party1 {
		party2 = parties[rng.Intn(len(parties))]
	}

	text, spans := fill(templates[rng.Intn(len(templates))], map[string]string{
		"{date}":         dates[rng.Intn(len(dates))],
		"{party1}":       party1,
		"{party2}":       party2,
		"{amount}":       amounts[rng.Intn(len(amounts))],
		"{jurisdiction}": jurisdictions[rng.Intn(len(jurisdictions))],
	})

	noise := math.Round((0.01+rng.Float64()*0.04)*10000) / 10000

	return document.NewRecord(document.Document{
		ID:         uuid.New().String(),
		Text:       text,
		TextLength: utf8.RuneCountInString(text),
		NoiseRatio: noise,
	}, spans)
}
