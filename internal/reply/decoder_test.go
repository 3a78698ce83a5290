package reply

import (
	"strings"
	"testing"
)

func TestDecode_SingleDirectives(t *testing.T) {
	t.Run("image query", func(t *testing.T) {
		got := Decode(`Marte é fascinante! [IMAGEM]:["marte"]`)
		if got.ImageQuery != "marte" {
			t.Errorf("ImageQuery = %q, want %q", got.ImageQuery, "marte")
		}
		if got.DisplayText != "Marte é fascinante!" {
			t.Errorf("DisplayText = %q", got.DisplayText)
		}
	})

	t.Run("source", func(t *testing.T) {
		got := Decode(`A Lua orbita a Terra. [FONTE]:["Registros da missão Apollo 11"]`)
		if got.Source != "Registros da missão Apollo 11" {
			t.Errorf("Source = %q", got.Source)
		}
		if got.DisplayText != "A Lua orbita a Terra." {
			t.Errorf("DisplayText = %q", got.DisplayText)
		}
	})

	t.Run("suggestions in order", func(t *testing.T) {
		got := Decode(`Olá! [SUGESTÕES]: ["A","B"]`)
		if got.DisplayText != "Olá!" {
			t.Errorf("DisplayText = %q, want %q", got.DisplayText, "Olá!")
		}
		if len(got.Suggestions) != 2 || got.Suggestions[0] != "A" || got.Suggestions[1] != "B" {
			t.Errorf("Suggestions = %v, want [A B]", got.Suggestions)
		}
		if got.ImageQuery != "" || got.Source != "" || got.MissionCompleted != "" || got.Challenge != nil {
			t.Errorf("unexpected fields set: %+v", got)
		}
	})

	t.Run("mission completed", func(t *testing.T) {
		got := Decode(`Parabéns! [MISSÃO CONCLUÍDA]:["Buracos Negros"]`)
		if got.MissionCompleted != "Buracos Negros" {
			t.Errorf("MissionCompleted = %q", got.MissionCompleted)
		}
	})

	t.Run("challenge with two args", func(t *testing.T) {
		got := Decode(`Você conseguiu! [DESAFIO DO DIA]:["Arquiteto de Marte", "Desenhe uma estação espacial."]`)
		if got.Challenge == nil {
			t.Fatal("Challenge = nil, want set")
		}
		if got.Challenge.Name != "Arquiteto de Marte" {
			t.Errorf("Challenge.Name = %q", got.Challenge.Name)
		}
		if got.Challenge.Description != "Desenhe uma estação espacial." {
			t.Errorf("Challenge.Description = %q", got.Challenge.Description)
		}
	})
}

func TestDecode_AllDirectivesTogether(t *testing.T) {
	raw := `Saturno tem anéis incríveis! [IMAGEM]:["saturno"] ` +
		`[FONTE]:["Sonda Cassini"] ` +
		`[MISSÃO CONCLUÍDA]:["Saturno"] ` +
		`[DESAFIO DO DIA]:["Contador de Anéis", "Pesquise quantos anéis Saturno tem."] ` +
		`[SUGESTÕES]: ["Do que são feitos os anéis?", "Outros planetas têm anéis?"]`

	got := Decode(raw)

	if got.DisplayText != "Saturno tem anéis incríveis!" {
		t.Errorf("DisplayText = %q", got.DisplayText)
	}
	if got.ImageQuery != "saturno" {
		t.Errorf("ImageQuery = %q", got.ImageQuery)
	}
	if got.Source != "Sonda Cassini" {
		t.Errorf("Source = %q", got.Source)
	}
	if got.MissionCompleted != "Saturno" {
		t.Errorf("MissionCompleted = %q", got.MissionCompleted)
	}
	if got.Challenge == nil || got.Challenge.Name != "Contador de Anéis" {
		t.Errorf("Challenge = %+v", got.Challenge)
	}
	if len(got.Suggestions) != 2 {
		t.Errorf("Suggestions = %v", got.Suggestions)
	}
}

func TestDecode_DirectiveInMiddleOfText(t *testing.T) {
	got := Decode("Veja só [IMAGEM]:[\"nebulosa de orion\"] que linda ela é!")
	if got.ImageQuery != "nebulosa de orion" {
		t.Errorf("ImageQuery = %q", got.ImageQuery)
	}
	if got.DisplayText != "Veja só  que linda ela é!" {
		t.Errorf("DisplayText = %q", got.DisplayText)
	}
}

func TestDecode_MalformedDirectives(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unbalanced quote", `Olá! [IMAGEM]:["marte]`},
		{"missing brackets", `Olá! [IMAGEM]: "marte"`},
		{"challenge with one arg", `Olá! [DESAFIO DO DIA]:["só um nome"]`},
		{"empty tag", `Olá! [FONTE]:`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw)
			if got.HasDirectives() {
				t.Errorf("Decode(%q) set directive fields: %+v", tt.raw, got)
			}
			// Malformed tags stay in the display text untouched.
			if !strings.Contains(got.DisplayText, "[") {
				t.Errorf("malformed tag should remain in DisplayText, got %q", got.DisplayText)
			}
		})
	}
}

func TestDecode_NoDirectives(t *testing.T) {
	got := Decode("  Apenas texto simples.  ")
	if got.DisplayText != "Apenas texto simples." {
		t.Errorf("DisplayText = %q", got.DisplayText)
	}
	if got.HasDirectives() {
		t.Errorf("unexpected directives: %+v", got)
	}
}

func TestDecode_EmptySuggestionList(t *testing.T) {
	got := Decode(`Olá! [SUGESTÕES]: []`)
	if len(got.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want empty", got.Suggestions)
	}
	if got.DisplayText != "Olá!" {
		t.Errorf("DisplayText = %q", got.DisplayText)
	}
}

// Re-decoding the produced display text must yield no directive fields: every
// well-formed directive is fully consumed on the first pass.
func TestDecode_Idempotent(t *testing.T) {
	raws := []string{
		`Olá! [SUGESTÕES]: ["A","B"]`,
		`Texto [IMAGEM]:["lua"] com [FONTE]:["Hubble"] tudo junto [MISSÃO CONCLUÍDA]:["Lua"]`,
		`[DESAFIO DO DIA]:["Nome", "Descrição"] no começo`,
		`Sem diretivas nenhuma.`,
	}

	for _, raw := range raws {
		first := Decode(raw)
		second := Decode(first.DisplayText)
		if second.HasDirectives() {
			t.Errorf("Decode(Decode(%q).DisplayText) still has directives: %+v", raw, second)
		}
		if second.DisplayText != first.DisplayText {
			t.Errorf("display text not stable: %q -> %q", first.DisplayText, second.DisplayText)
		}
	}
}

func TestDecode_FirstOccurrenceWins(t *testing.T) {
	got := Decode(`[IMAGEM]:["primeira"] texto [IMAGEM]:["segunda"]`)
	if got.ImageQuery != "primeira" {
		t.Errorf("ImageQuery = %q, want first occurrence", got.ImageQuery)
	}
	// Only the first occurrence is stripped; the duplicate stays visible.
	if !strings.Contains(got.DisplayText, "segunda") {
		t.Errorf("DisplayText = %q", got.DisplayText)
	}
}
