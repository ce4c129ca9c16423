package intent

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantType   Type
		wantHint   string
		confidence Confidence
	}{
		{"bare feito", "feito", MarkDone, "", High},
		{"feito with padding and case", "  FEITO  ", MarkDone, "", High},
		{"feito with habit", "feito leitura", MarkDone, "leitura", High},
		{"fiz with multi-word habit", "Fiz Beber Água", MarkDone, "beber água", High},
		{"concluido without accent", "concluido", MarkDone, "", High},
		{"concluído with accent", "concluído", MarkDone, "", High},
		{"ok", "ok", MarkDone, "", High},
		{"check mark", "✓", MarkDone, "", High},
		{"heavy check mark", "✔", MarkDone, "", High},
		{"pendentes", "pendentes", ListPending, "", High},
		{"pendente", "pendente", ListPending, "", High},
		{"o que falta", "O que falta?", ListPending, "", High},
		{"hoje", "hoje", ListPending, "", High},
		{"status", "status", Status, "", High},
		{"como estou", "como estou?", Status, "", High},
		{"como vai meu dia", "como vai meu dia", Status, "", High},
		{"help question mark", "?", Help, "", High},
		{"greeting", "Olá", Help, "", High},
		{"bom dia", "bom dia", Help, "", High},
		{"fallback with article", "já fiz a leitura", MarkDone, "leitura", Medium},
		{"fallback without remainder", "feito!", MarkDone, "", Medium},
		{"fallback keeps other words", "meditação feita e feito", MarkDone, "meditação e", Medium},
		{"unknown", "qual a previsão do tempo", Unknown, "", Low},
		{"empty", "   ", Unknown, "", Low},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message)
			assert.Equal(t, tt.wantType, got.Intent.Type)
			assert.Equal(t, tt.wantHint, got.Intent.HabitHint)
			assert.Equal(t, tt.confidence, got.Confidence)
		})
	}
}

func TestClassify_HintIsCapturedGroupVerbatim(t *testing.T) {
	capture := regexp.MustCompile(`^(?:feito|fiz)\s+(.+)$`)
	for _, msg := range []string{
		"feito leitura",
		"fiz  beber   água",
		"feito 10 minutos de yoga!",
		"fiz x",
	} {
		m := capture.FindStringSubmatch(Normalize(msg))
		if assert.NotNil(t, m, msg) {
			got := Classify(msg)
			assert.Equal(t, MarkDone, got.Intent.Type, msg)
			assert.Equal(t, m[1], got.Intent.HabitHint, msg)
		}
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	rules := []Rule{
		rule(Help, `^feito$`),
		rule(MarkDone, `^feito$`),
	}
	got := ClassifyWith(rules, "feito")
	assert.Equal(t, Help, got.Intent.Type)
}

func TestRules_AreIndependentlyTestable(t *testing.T) {
	for _, r := range Rules {
		assert.NotNil(t, r.Pattern)
		assert.Contains(t, []Type{MarkDone, ListPending, Status, Help}, r.Type)
	}
}
