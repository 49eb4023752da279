package promptbuild

import (
	"strings"
	"testing"

	"github.com/planestic/ud-assistant/internal/config"
)

func TestBuildUserSectionsInOrder(t *testing.T) {
	org := config.DefaultOrganization()
	pair := Build(org, "[Rector](https://udistrital.edu.co/rector)\nEl rector es...\n", "¿Quién es el rector?")

	expectedOrder := []string{
		"INSTRUCCIONES PARA TI",
		"[ANALYSIS]",
		"[CONTEXTO_DE_TAVILY]\n[Rector](https://udistrital.edu.co/rector)",
		"[PREGUNTA_DEL_USUARIO]\n¿Quién es el rector?",
	}
	lastPos := -1
	for _, marker := range expectedOrder {
		idx := strings.Index(pair.User, marker)
		if idx == -1 {
			t.Fatalf("expected user prompt to contain %q, got:\n%s", marker, pair.User)
		}
		if idx <= lastPos {
			t.Fatalf("expected marker %q after previous marker", marker)
		}
		lastPos = idx
	}
	if !strings.HasSuffix(pair.User, "¿Quién es el rector?") {
		t.Fatalf("expected question at the end of the user prompt")
	}
	if !strings.Contains(pair.User, "sobre la UD") {
		t.Fatalf("expected organization short name to be rendered, got:\n%s", pair.User)
	}
}

func TestBuildKeepsEmptyContextSection(t *testing.T) {
	pair := Build(config.DefaultOrganization(), "", "hola")
	if !strings.Contains(pair.User, "[CONTEXTO_DE_TAVILY]\n\n\n[PREGUNTA_DEL_USUARIO]") {
		t.Fatalf("expected empty context section, got:\n%s", pair.User)
	}
}

func TestSystemInstructionRules(t *testing.T) {
	org := config.DefaultOrganization()
	pair := Build(org, "ctx", "q")

	for _, want := range []string{
		"Universidad Distrital Francisco José de Caldas (UD)",
		RejectionMessage(org),
		"Referencia conocida:",
		"Sabio Caldas",
		"[Título](URL)",
		NotInContextMessage,
		"No muestres tu análisis interno",
	} {
		if !strings.Contains(pair.System, want) {
			t.Fatalf("system instruction missing %q", want)
		}
	}
}

func TestBuildDocumentTemplate(t *testing.T) {
	b := NewBuilder(config.DefaultOrganization())
	pair, err := b.BuildDocument("doc body", "¿Qué es PlanEsTIC?")
	if err != nil {
		t.Fatalf("BuildDocument failed: %v", err)
	}
	if pair.System != "" {
		t.Fatalf("document prompt should not carry a system message")
	}
	for _, want := range []string{
		"Pregunta: ¿Qué es PlanEsTIC?",
		"Documentos: doc body",
		"https://planestic.udistrital.edu.co/",
		"https://mesadeayuda.planestic.udistrital.edu.co/",
	} {
		if !strings.Contains(pair.User, want) {
			t.Fatalf("document prompt missing %q, got:\n%s", want, pair.User)
		}
	}
}

func TestBuildForStyle(t *testing.T) {
	b := NewBuilder(config.DefaultOrganization())

	chat, err := b.BuildFor(StyleForBot("deepseek"), "c", "q")
	if err != nil || chat.System == "" {
		t.Fatalf("expected chat prompt, got %#v err=%v", chat, err)
	}
	doc, err := b.BuildFor(StyleForBot("llama"), "c", "q")
	if err != nil || doc.System != "" || !strings.Contains(doc.User, "Documentos: c") {
		t.Fatalf("expected document prompt, got %#v err=%v", doc, err)
	}
}
