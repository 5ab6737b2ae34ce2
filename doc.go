/*
Package callflow is a navigation engine for scripted sales calls.

A call script is a directed graph of nodes. Each node carries prompt text with
{{TOKEN}} placeholders and a list of options; choosing an option patches the
call context and moves to the next node. The engine resolves every node's text
against the context, keeps a history of context snapshots so Back restores
exactly what the representative saw, applies redirection rules before lookup,
and derives an end-of-call summary with CRM, confirmation and voicemail
templates.

# Concept

The engine is a synchronous state evaluator. The host (a terminal shell, a web
handler, a test) owns the I/O: it shows the ResolvedView returned by each call
and forwards the representative's choice back. Every operation is atomic; on
error the call is exactly as it was.

# Usage

	eng, err := callflow.New("callflow.yaml", callflow.WithStickyFields("repName"))
	if err != nil {
		log.Fatal(err)
	}

	view, err := eng.Start(domain.CallContext{CustomerName: "Dana", RepName: "Sam"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(view.Text)

	view, err = eng.ChooseIndex(0)
	// ...

	s, _ := eng.Summary("prefers texts")
	fmt.Println(s.CRM)

# Graph Sources

New reads a single YAML or JSON document, validated against a JSON Schema
before use. NewFromGraph accepts a graph built in code, for example with the
pkg/dsl builder. WithLoader plugs in any ports.GraphLoader.

# Redirection

Before a node is looked up, the requested id is matched against redirection
rules. The defaults send an unknown lead to "qualify_unknown" and an upgrade
lead without a device to "qualify_upgrade" whenever "pitch" is requested.
A document's "redirects" key, or WithRedirectRules, replaces the defaults.
Rule predicates are expr-lang expressions over the context fields.
*/
package callflow
