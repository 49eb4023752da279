package promptbuild

import (
	"fmt"
	"strings"

	"github.com/planestic/ud-assistant/internal/config"
	"github.com/planestic/ud-assistant/internal/logger"
	"github.com/tmc/langchaingo/prompts"
)

const (
	SectionAnalysis = "ANALYSIS"
	SectionContext  = "CONTEXTO_DE_TAVILY"
	SectionQuestion = "PREGUNTA_DEL_USUARIO"
)

const userPreamble = "INSTRUCCIONES PARA TI (NO MOSTRAR AL USUARIO):\n" +
	"Primero, decide internamente si la pregunta es sobre la {{.short_name}}. " +
	"No reveles tu análisis; entrega solo la respuesta final."

const analysisTask = "Tarea: Decide si la pregunta está relacionada con la {{.short_name}} (sí/no) y si menciona otra universidad explícita.\n" +
	"Criterios: Palabras clave, nombres propios, dominio de las fuentes en el contexto, etc."

const documentTemplate = `Eres un asistente de IA que responde preguntas basadas en documentos.
Solo responde en lenguaje markdown usando esos documentos. Si la información no está disponible, invita a visitar {{.help_url}} o solicitar un ticket en {{.ticket_url}}.
Pregunta: {{.question}}
Documentos: {{.context}}`

// Builder assembles prompts for one organization.
type Builder struct {
	org      config.OrgConfig
	system   string
	document prompts.PromptTemplate
}

func NewBuilder(org config.OrgConfig) *Builder {
	doc := prompts.NewPromptTemplate(documentTemplate, []string{"question", "context"})
	doc.PartialVariables = map[string]any{
		"help_url":   org.HelpURL,
		"ticket_url": org.TicketURL,
	}
	return &Builder{
		org:      org,
		system:   systemInstruction(org),
		document: doc,
	}
}

// Build returns the chat prompt for org with the packed context and query.
func Build(org config.OrgConfig, context, query string) PromptPair {
	return NewBuilder(org).Build(context, query)
}

// Build assembles the system instruction and a user message carrying the
// analysis task, the packed context and the question.
func (b *Builder) Build(context, query string) PromptPair {
	vars := map[string]any{"short_name": b.org.ShortName}

	sections := []section{
		{content: render(userPreamble, vars)},
		{title: SectionAnalysis, content: render(analysisTask, vars)},
		{title: SectionContext, content: context, keepEmpty: true},
		{title: SectionQuestion, content: query, keepEmpty: true},
	}

	user := renderSections(sections)
	logger.Debug("[Prompt] User prompt built (len=%d chars)", len(user))
	return PromptPair{System: b.system, User: user}
}

// BuildDocument renders the single-prompt document-QA template.
func (b *Builder) BuildDocument(context, query string) (PromptPair, error) {
	out, err := b.document.Format(map[string]any{
		"question": query,
		"context":  context,
	})
	if err != nil {
		return PromptPair{}, fmt.Errorf("render document prompt: %w", err)
	}
	return PromptPair{User: out}, nil
}

// BuildFor picks the layout for style.
func (b *Builder) BuildFor(style Style, context, query string) (PromptPair, error) {
	if style == StyleDocument {
		return b.BuildDocument(context, query)
	}
	return b.Build(context, query), nil
}

type section struct {
	title     string
	content   string
	keepEmpty bool
}

func renderSections(sections []section) string {
	var out strings.Builder
	first := true
	for _, s := range sections {
		if !s.keepEmpty && strings.TrimSpace(s.content) == "" {
			continue
		}
		if !first {
			out.WriteString("\n\n")
		}
		first = false
		if s.title != "" {
			out.WriteString("[")
			out.WriteString(s.title)
			out.WriteString("]\n")
		}
		out.WriteString(s.content)
	}
	return out.String()
}

func render(tmpl string, vars map[string]any) string {
	out, err := prompts.RenderTemplate(tmpl, prompts.TemplateFormatGoTemplate, vars)
	if err != nil {
		logger.Warn("[Prompt] Failed to render template: %v", err)
		return tmpl
	}
	return out
}
