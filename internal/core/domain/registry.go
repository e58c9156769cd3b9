package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Registry maps normalized command tokens to their definitions. It is
// populated once at startup and only read afterwards.
type Registry struct {
	definitions map[string]CommandDefinition
}

func (r *Registry) Register(definition CommandDefinition) {
	if r.definitions == nil {
		r.definitions = make(map[string]CommandDefinition)
	}

	definition.Token = strings.ToLower(definition.Token)

	log.Info().Str("token", definition.Token).Msg("adding command definition to registry")
	r.definitions[definition.Token] = definition
}

func (r *Registry) Get(token string) (CommandDefinition, error) {
	definition, ok := r.definitions[strings.ToLower(token)]
	if !ok {
		return CommandDefinition{}, ErrCommandNotFound
	}

	return definition, nil
}

// Definitions returns all registered definitions sorted by token, so the
// help listing is stable across restarts.
func (r *Registry) Definitions() []CommandDefinition {
	definitions := make([]CommandDefinition, 0, len(r.definitions))
	for _, definition := range r.definitions {
		definitions = append(definitions, definition)
	}

	sort.Slice(definitions, func(i, j int) bool {
		return definitions[i].Token < definitions[j].Token
	})

	return definitions
}

// HelpText enumerates every registered command. It is derived from the
// registry contents so the listing and the dispatch table cannot drift apart.
func (r *Registry) HelpText() string {
	var b strings.Builder
	b.WriteString("Available commands:")

	for _, definition := range r.Definitions() {
		fmt.Fprintf(&b, "\n• %s — %s", definition.Token, definition.Description)
	}

	return b.String()
}
