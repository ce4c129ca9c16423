// Package intent classifies free-text chat messages into a closed set of
// habit-tracking intents using an ordered list of patterns.
package intent

import (
	"regexp"
	"strings"
)

// Type is the kind of intent carried by a message.
type Type string

const (
	MarkDone    Type = "mark_done"
	ListPending Type = "list_pending"
	Status      Type = "status"
	Help        Type = "help"
	Unknown     Type = "unknown"
)

// Confidence grades how the intent was recognised.
type Confidence string

const (
	High   Confidence = "high"
	Medium Confidence = "medium"
	Low    Confidence = "low"
)

// Intent is the classified purpose of a message. HabitHint is only set for
// MarkDone and may be empty.
type Intent struct {
	Type      Type
	HabitHint string
}

// Result pairs an intent with the confidence of its classification.
type Result struct {
	Intent     Intent
	Confidence Confidence
}

// Rule maps a pattern to an intent. For MarkDone rules, the first capture
// group (if any) becomes the habit hint.
type Rule struct {
	Type    Type
	Pattern *regexp.Regexp
}

func rule(t Type, expr string) Rule {
	return Rule{Type: t, Pattern: regexp.MustCompile(expr)}
}

// Rules is evaluated in order against the normalised text; the first match wins.
var Rules = []Rule{
	rule(MarkDone, `^feito$`),
	rule(MarkDone, `^feito\s+(.+)$`),
	rule(MarkDone, `^fiz$`),
	rule(MarkDone, `^fiz\s+(.+)$`),
	rule(MarkDone, `^conclu[ií]do$`),
	rule(MarkDone, `^pronto$`),
	rule(MarkDone, `^ok$`),
	rule(MarkDone, `^done$`),
	rule(MarkDone, `^✓$`),
	rule(MarkDone, `^✔$`),

	rule(ListPending, `^pendentes?$`),
	rule(ListPending, `^o que falta\??$`),
	rule(ListPending, `^faltam?$`),
	rule(ListPending, `^lista$`),
	rule(ListPending, `^listar$`),
	rule(ListPending, `^hoje$`),

	rule(Status, `^status$`),
	rule(Status, `^progresso$`),
	rule(Status, `^como (estou|est[aá])\??$`),
	rule(Status, `^resumo$`),
	rule(Status, `^como (vai|est[aá]) meu dia\??$`),

	rule(Help, `^ajuda$`),
	rule(Help, `^help$`),
	rule(Help, `^comandos$`),
	rule(Help, `^\?$`),
	rule(Help, `^oi$`),
	rule(Help, `^ol[aá]$`),
	rule(Help, `^bom dia$`),
	rule(Help, `^boa tarde$`),
	rule(Help, `^boa noite$`),
}

// ackWords trigger the medium-confidence fallback when found anywhere in the text.
var ackWords = []string{"feito", "fiz"}

// fillerWords are dropped from the fallback remainder before it becomes a hint.
var fillerWords = map[string]struct{}{
	"feito": {}, "feita": {}, "feitos": {}, "feitas": {}, "fiz": {},
	"o": {}, "a": {}, "os": {}, "as": {},
	"do": {}, "da": {}, "dos": {}, "das": {}, "de": {},
	"um": {}, "uma": {}, "eu": {}, "já": {}, "ja": {},
}

// Normalize trims and lowercases message text.
func Normalize(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

// Classify maps raw message text to exactly one intent.
func Classify(message string) Result {
	return ClassifyWith(Rules, message)
}

// ClassifyWith runs classification against an explicit rule list.
func ClassifyWith(rules []Rule, message string) Result {
	text := Normalize(message)

	for _, r := range rules {
		m := r.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		in := Intent{Type: r.Type}
		if r.Type == MarkDone && len(m) > 1 {
			in.HabitHint = m[1]
		}
		return Result{Intent: in, Confidence: High}
	}

	for _, w := range ackWords {
		if strings.Contains(text, w) {
			return Result{
				Intent:     Intent{Type: MarkDone, HabitHint: stripFiller(text)},
				Confidence: Medium,
			}
		}
	}

	return Result{Intent: Intent{Type: Unknown}, Confidence: Low}
}

func stripFiller(text string) string {
	var kept []string
	for _, word := range strings.Fields(text) {
		w := strings.Trim(word, ".,;:!?")
		if w == "" {
			continue
		}
		if _, ok := fillerWords[w]; ok {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
