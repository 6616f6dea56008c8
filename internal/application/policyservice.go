package application

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/agenttools/agenttools/internal/domain/model"
)

// PolicyRule is one pattern in a policy file. Pattern is a case-insensitive
// regular expression matched against the Bash command; Reason explains the
// block to the agent.
type PolicyRule struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason,omitempty"`
}

// PolicyConfig is the declarative allow/block policy applied to Bash
// commands. Allow patterns are checked first and win over block patterns.
// Agents listed in AllowedAgents bypass the policy entirely.
type PolicyConfig struct {
	AllowedAgents []string     `yaml:"allowed_agents,omitempty"`
	Allow         []PolicyRule `yaml:"allow,omitempty"`
	Block         []PolicyRule `yaml:"block,omitempty"`
}

// DefaultPolicyConfig returns the built-in policy used when no policy file
// is configured: read-only git commands are always allowed, force pushes and
// rm -rf against root paths are blocked.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		Allow: []PolicyRule{
			{Pattern: `git\s+status`},
			{Pattern: `git\s+diff`},
			{Pattern: `git\s+log`},
			{Pattern: `echo\s+`},
		},
		Block: []PolicyRule{
			{Pattern: `git\s+push.*--force`, Reason: "Force push requires manual approval"},
			{Pattern: `rm\s+-rf\s+/`, Reason: "Cannot rm -rf root paths"},
		},
	}
}

// LoadPolicyConfig reads a YAML policy file from path.
func LoadPolicyConfig(path string) (PolicyConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PolicyConfig{}, fmt.Errorf("read policy file: %w", err)
	}

	var cfg PolicyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PolicyConfig{}, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return cfg, nil
}

// Decision is the outcome of evaluating one tool call against the policy.
type Decision struct {
	Allowed bool
	Reason  string
}

type compiledRule struct {
	re     *regexp.Regexp
	reason string
}

// PolicyService evaluates tool calls against a compiled policy. Only Bash
// commands are inspected; every other tool is allowed through.
type PolicyService struct {
	allowedAgents map[string]struct{}
	allow         []compiledRule
	block         []compiledRule
	logger        *slog.Logger
}

// NewPolicyService compiles cfg's patterns. A pattern that fails to compile
// is an error; a policy with silently missing rules is worse than no policy.
func NewPolicyService(cfg PolicyConfig) (*PolicyService, error) {
	svc := &PolicyService{
		allowedAgents: make(map[string]struct{}, len(cfg.AllowedAgents)),
		logger:        slog.Default(),
	}
	for _, id := range cfg.AllowedAgents {
		svc.allowedAgents[id] = struct{}{}
	}

	var err error
	if svc.allow, err = compileRules(cfg.Allow); err != nil {
		return nil, fmt.Errorf("allow rules: %w", err)
	}
	if svc.block, err = compileRules(cfg.Block); err != nil {
		return nil, fmt.Errorf("block rules: %w", err)
	}
	return svc, nil
}

func compileRules(rules []PolicyRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, reason: r.Reason})
	}
	return compiled, nil
}

// Evaluate decides whether call may proceed. Allow patterns are checked
// before block patterns, and an empty command is always allowed.
func (s *PolicyService) Evaluate(call model.ToolCall) Decision {
	if call.ToolName != "Bash" {
		return Decision{Allowed: true}
	}

	if _, ok := s.allowedAgents[call.AgentID]; ok && call.AgentID != "" {
		s.logger.Debug("agent bypasses policy", "agent_id", call.AgentID)
		return Decision{Allowed: true}
	}

	command := call.InputString("command")
	if command == "" {
		return Decision{Allowed: true}
	}

	for _, rule := range s.allow {
		if rule.re.MatchString(command) {
			return Decision{Allowed: true}
		}
	}

	for _, rule := range s.block {
		if rule.re.MatchString(command) {
			return Decision{Allowed: false, Reason: rule.reason}
		}
	}

	return Decision{Allowed: true}
}
