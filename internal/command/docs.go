package command

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds the documentation for every known command.
type Registry struct {
	docs      []CommandDoc
	index     map[string]int // command name -> index in docs
	dangerous map[string]bool
}

// NewRegistry builds a registry from the built-in command table and the
// application commands.
func NewRegistry() *Registry {
	docs := make([]CommandDoc, 0, len(builtinDocs)+len(appDocs))
	docs = append(docs, builtinDocs...)
	docs = append(docs, appDocs...)

	dangerous := make(map[string]bool, len(dangerousCommands))
	for _, cmd := range dangerousCommands {
		dangerous[cmd] = true
	}

	idx := make(map[string]int, len(docs))
	for i, doc := range docs {
		idx[doc.Command] = i
	}

	return &Registry{
		docs:      docs,
		index:     idx,
		dangerous: dangerous,
	}
}

// Get returns the documentation for cmd, or nil. Compound names like
// "CLIENT INFO" are looked up as a whole.
func (r *Registry) Get(cmd string) *CommandDoc {
	cmd = strings.ToUpper(cmd)
	if i, ok := r.index[cmd]; ok {
		return &r.docs[i]
	}
	return nil
}

// GetCommands returns a list of command names that start with the given prefix.
// Used for tab completion.
func (r *Registry) GetCommands(prefix string) []string {
	prefix = strings.ToUpper(prefix)
	var matches []string
	for _, doc := range r.docs {
		if strings.HasPrefix(doc.Command, prefix) {
			matches = append(matches, doc.Command)
		}
	}
	return matches
}

// Lookup resolves the doc for a command line, preferring a compound entry
// such as "CLIENT INFO" over the bare name.
func (r *Registry) Lookup(name string, args []string) *CommandDoc {
	if len(args) > 0 {
		if doc := r.Get(name + " " + args[0]); doc != nil {
			return doc
		}
	}
	return r.Get(name)
}

// IsApplication reports whether cmd is handled locally by the CLI.
func (r *Registry) IsApplication(cmd string) bool {
	doc := r.Get(cmd)
	return doc != nil && doc.Group == "application"
}

// Groups returns the known group names in order.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, doc := range r.docs {
		if doc.Group != "" && !seen[doc.Group] {
			seen[doc.Group] = true
			groups = append(groups, doc.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

// Search returns a list of CommandDocs whose names start with the given prefix.
func (r *Registry) Search(prefix string) []CommandDoc {
	prefix = strings.ToUpper(prefix)
	var matches []CommandDoc
	for _, doc := range r.docs {
		if strings.HasPrefix(doc.Command, prefix) {
			matches = append(matches, doc)
		}
	}
	return matches
}

// IsDangerous reports whether cmd needs confirmation before it is sent.
// Compound names such as "CONFIG SET" match on their first word.
func (r *Registry) IsDangerous(cmd string) bool {
	cmd = strings.ToUpper(strings.TrimSpace(cmd))
	if r.dangerous[cmd] {
		return true
	}
	if head, _, ok := strings.Cut(cmd, " "); ok {
		return r.dangerous[head]
	}
	return false
}

// MergeServerCommands adds commands reported by the server's COMMAND reply.
// Known commands keep their built-in docs; new ones get a minimal entry so
// they show up in completion.
func (r *Registry) MergeServerCommands(cmds []ServerCommand) {
	for _, sc := range cmds {
		r.mergeOne(sc)
		for _, sub := range sc.Subcommands {
			r.mergeOne(sub)
		}
	}
}

func (r *Registry) mergeOne(sc ServerCommand) {
	if _, exists := r.index[sc.Name]; exists {
		return
	}
	doc := CommandDoc{
		Command:   sc.Name,
		Arguments: arityHint(sc.Arity),
		Group:     primaryACLGroup(sc.ACLCats),
	}
	r.index[sc.Name] = len(r.docs)
	r.docs = append(r.docs, doc)
}

// arityHint generates a basic argument hint string from the COMMAND arity.
// Arity includes the command name itself, so actual args = |arity| - 1.
func arityHint(arity int64) string {
	if arity == 0 || arity == 1 {
		return ""
	}
	if arity > 1 {
		n := int(arity) - 1
		parts := make([]string, n)
		for i := range parts {
			parts[i] = fmt.Sprintf("arg%d", i+1)
		}
		return strings.Join(parts, " ")
	}
	// Negative arity: at least |arity| - 1 args
	minArgs := int(-arity) - 1
	if minArgs == 0 {
		return "[arg ...]"
	}
	parts := make([]string, minArgs)
	for i := range parts {
		parts[i] = fmt.Sprintf("arg%d", i+1)
	}
	return strings.Join(parts, " ") + " [arg ...]"
}

// primaryACLGroup picks a human-friendly group name from ACL categories.
// It skips meta-categories and returns the first domain category.
func primaryACLGroup(cats []string) string {
	skip := map[string]bool{
		"@read": true, "@write": true, "@fast": true, "@slow": true,
		"@admin": true, "@dangerous": true, "@keyspace": true,
	}
	for _, cat := range cats {
		if !skip[cat] && strings.HasPrefix(cat, "@") {
			return cat[1:]
		}
	}
	// Fallback to meta categories that make reasonable group names
	for _, cat := range cats {
		if cat == "@connection" || cat == "@pubsub" || cat == "@admin" {
			return cat[1:]
		}
	}
	return ""
}
