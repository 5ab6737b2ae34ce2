package runtime

import (
	"fmt"

	"github.com/drelynlikescode26/callflow-assist/pkg/domain"
	"github.com/drelynlikescode26/callflow-assist/pkg/schema"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Node ids used by the default redirection rules.
const (
	PitchNodeID          = "pitch"
	QualifyUnknownNodeID = "qualify_unknown"
	QualifyUpgradeNodeID = "qualify_upgrade"
)

// DefaultRedirectRules returns the built-in rules in priority order.
func DefaultRedirectRules() []domain.RedirectRule {
	return []domain.RedirectRule{
		{
			Name:   "unknown-lead",
			Target: PitchNodeID,
			When:   `leadType == "unknown"`,
			To:     QualifyUnknownNodeID,
		},
		{
			Name:   "upgrade-qualifier",
			Target: PitchNodeID,
			When:   `leadType == "upgrades" && upgradeType == ""`,
			To:     QualifyUpgradeNodeID,
		},
	}
}

type compiledRule struct {
	rule    domain.RedirectRule
	program *vm.Program
}

// compileRules type-checks every predicate against the context shape.
// An empty predicate always matches.
func compileRules(rules []domain.RedirectRule) ([]compiledRule, error) {
	env := schema.ContextEnv(domain.CallContext{})
	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
			r.Name = name
		}
		if r.Target == "" || r.To == "" {
			return nil, &domain.ConfigError{Reason: fmt.Sprintf("redirect rule %s needs both target and to", name)}
		}
		cr := compiledRule{rule: r}
		if r.When != "" {
			program, err := expr.Compile(r.When, expr.Env(env), expr.AsBool())
			if err != nil {
				return nil, &domain.ConfigError{Reason: fmt.Sprintf("redirect rule %s", name), Err: err}
			}
			cr.program = program
		}
		compiled = append(compiled, cr)
	}
	return compiled, nil
}

// redirect returns the node id to look up for requestedID. The first
// matching rule wins and its result is not redirected again.
func (e *Engine) redirect(requestedID string, c domain.CallContext) (string, *domain.RedirectRule, error) {
	var env map[string]any
	for i := range e.rules {
		cr := &e.rules[i]
		if cr.rule.Target != requestedID {
			continue
		}
		if cr.program != nil {
			if env == nil {
				env = schema.ContextEnv(c)
			}
			out, err := expr.Run(cr.program, env)
			if err != nil {
				return "", nil, &domain.ConfigError{Reason: fmt.Sprintf("redirect rule %s", cr.rule.Name), Err: err}
			}
			if matched, _ := out.(bool); !matched {
				continue
			}
		}
		return cr.rule.To, &cr.rule, nil
	}
	return requestedID, nil, nil
}
