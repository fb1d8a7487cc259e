package bridge

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"resolveprobe/internal/resolve"
)

//go:embed helper.py
var helperScript string

// Config locates the scripting module and its host interpreter.
type Config struct {
	Python     string
	ScriptAPI  string
	ScriptLib  string
	ModulesDir string
}

// Executor abstracts process execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args, env []string, stdin []byte) (stdout, stderr []byte, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithBaseEnv replaces the environment the child inherits (os.Environ by default).
func WithBaseEnv(env []string) Option {
	return func(c *Client) {
		c.baseEnv = append([]string(nil), env...)
	}
}

// Client drives the embedded helper. It implements resolve.Entry.
type Client struct {
	cfg     Config
	exec    Executor
	baseEnv []string
}

// New constructs a bridge client.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.Python = strings.TrimSpace(cfg.Python)
	if cfg.Python == "" {
		return nil, errors.New("python interpreter required")
	}
	client := &Client{cfg: cfg, exec: commandExecutor{}, baseEnv: os.Environ()}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// step is one navigation hop: a method call or an index into a list result.
type step struct {
	Method string `json:"method,omitempty"`
	Args   []any  `json:"args,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

func method(name string, args ...any) step {
	return step{Method: name, Args: args}
}

func index(i int) step {
	return step{Index: &i}
}

func (s step) String() string {
	if s.Index != nil {
		return fmt.Sprintf("[%d]", *s.Index)
	}
	return s.Method
}

type request struct {
	App  string `json:"app"`
	Path []step `json:"path,omitempty"`
	Call *step  `json:"call,omitempty"`
}

type response struct {
	OK      bool            `json:"ok"`
	Kind    string          `json:"kind"`
	Message string          `json:"message"`
	Null    bool            `json:"null"`
	Object  bool            `json:"object"`
	Value   json.RawMessage `json:"value"`
	Items   []string        `json:"items"`
}

// Environment returns the variables the helper process is started with on
// top of the base environment.
func (c *Client) Environment() []string {
	var env []string
	if c.cfg.ScriptAPI != "" {
		env = append(env, "RESOLVE_SCRIPT_API="+c.cfg.ScriptAPI)
	}
	if c.cfg.ScriptLib != "" {
		env = append(env, "RESOLVE_SCRIPT_LIB="+c.cfg.ScriptLib)
	}
	if c.cfg.ModulesDir != "" {
		pythonPath := c.cfg.ModulesDir
		if existing := lookupEnv(c.baseEnv, "PYTHONPATH"); existing != "" {
			pythonPath = existing + string(os.PathListSeparator) + c.cfg.ModulesDir
		}
		env = append(env, "PYTHONPATH="+pythonPath)
	}
	return env
}

func (c *Client) childEnv() []string {
	overrides := c.Environment()
	keys := make(map[string]struct{}, len(overrides))
	for _, kv := range overrides {
		keys[envKey(kv)] = struct{}{}
	}
	env := make([]string, 0, len(c.baseEnv)+len(overrides))
	for _, kv := range c.baseEnv {
		if _, replaced := keys[envKey(kv)]; replaced {
			continue
		}
		env = append(env, kv)
	}
	return append(env, overrides...)
}

// do runs one request through the helper and returns its decoded response.
// Transport-level problems and error responses are returned as errors tagged
// with the resolve sentinels.
func (c *Client) do(ctx context.Context, req request, node, op string) (response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return response{}, fmt.Errorf("encode bridge request: %w", err)
	}

	stdout, stderr, err := c.exec.Run(ctx, c.cfg.Python, []string{"-c", helperScript}, c.childEnv(), payload)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return response{}, resolve.Wrap(resolve.ErrModuleNotFound, "python", "exec",
				fmt.Errorf("interpreter %q not found", c.cfg.Python))
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return response{}, ctxErr
		}
		return response{}, resolve.Wrap(resolve.ErrCallFailed, node, op, withStderr(err, stderr))
	}

	resp, err := decodeResponse(stdout)
	if err != nil {
		return response{}, resolve.Wrap(resolve.ErrCallFailed, node, op, withStderr(err, stderr))
	}
	if resp.OK {
		return resp, nil
	}
	cause := errors.New(resp.Message)
	switch resp.Kind {
	case "module_missing":
		return resp, resolve.Wrap(resolve.ErrModuleNotFound, "DaVinciResolveScript", "import", cause)
	case "app_unreachable":
		return resp, resolve.Wrap(resolve.ErrAppUnreachable, node, op, cause)
	case "null_step":
		return resp, resolve.Wrap(resolve.ErrNoResult, node, op, cause)
	default:
		return resp, resolve.Wrap(resolve.ErrCallFailed, node, op, cause)
	}
}

// decodeResponse picks the last JSON object line from stdout; the scripting
// library may print its own diagnostics before it.
func decodeResponse(stdout []byte) (response, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); strings.HasPrefix(line, "{") {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return response{}, fmt.Errorf("read bridge output: %w", err)
	}
	if len(lines) == 0 {
		return response{}, errors.New("bridge produced no response")
	}
	var resp response
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &resp); err != nil {
		return response{}, fmt.Errorf("decode bridge response: %w", err)
	}
	return resp, nil
}

func withStderr(err error, stderr []byte) error {
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		return fmt.Errorf("%w: %s", err, lastLine(msg))
	}
	return err
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

func envKey(kv string) string {
	if i := strings.IndexByte(kv, '='); i >= 0 {
		return kv[:i]
	}
	return kv
}

func lookupEnv(env []string, key string) string {
	for i := len(env) - 1; i >= 0; i-- {
		if envKey(env[i]) == key {
			return strings.TrimPrefix(env[i], key+"=")
		}
	}
	return ""
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args, env []string, stdin []byte) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Env = env
	cmd.Stdin = bytes.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
