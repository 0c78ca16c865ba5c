package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dserrors "github.com/systmms/fixedsecret/internal/errors"
	"github.com/systmms/fixedsecret/internal/logging"
)

// DefaultAWSTimeout applies to AWS sources without timeout_ms
const DefaultAWSTimeout = 10 * time.Second

// Config holds the runtime configuration
type Config struct {
	Path     string
	Logger   *logging.Logger
	Manifest *Manifest
}

// Manifest is the fixedsecret.yaml structure naming the keys a process needs
type Manifest struct {
	Version int            `yaml:"version"`
	Keys    map[string]Key `yaml:"keys"`
}

// Encoding is how the stored value is encoded at its source
type Encoding string

const (
	EncodingRaw    Encoding = "raw"
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
)

// Key describes one fixed-length key and where to load it from
type Key struct {
	Name     string    `yaml:"-"`
	Size     int       `yaml:"size"`
	Encoding Encoding  `yaml:"encoding,omitempty"`
	From     Reference `yaml:"from"`
}

// Reference names exactly one source for a key
type Reference struct {
	Env     string      `yaml:"env,omitempty"`
	File    string      `yaml:"file,omitempty"`
	Keyring *KeyringRef `yaml:"keyring,omitempty"`
	AWS     *AWSRef     `yaml:"aws,omitempty"`
}

// KeyringRef points at an entry in the OS keyring
type KeyringRef struct {
	Service string `yaml:"service"`
	Account string `yaml:"account"`
}

// AWSRef points at an AWS Secrets Manager secret
type AWSRef struct {
	SecretID     string `yaml:"secret_id"`
	VersionStage string `yaml:"version_stage,omitempty"`
	Region       string `yaml:"region,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"` // Optional custom endpoint for LocalStack or testing
	TimeoutMs    int    `yaml:"timeout_ms,omitempty"`
}

// Timeout returns the configured timeout or DefaultAWSTimeout
func (a AWSRef) Timeout() time.Duration {
	if a.TimeoutMs <= 0 {
		return DefaultAWSTimeout
	}
	return time.Duration(a.TimeoutMs) * time.Millisecond
}

// Kind returns the source kind: env, file, keyring or aws
func (r Reference) Kind() string {
	switch {
	case r.Env != "":
		return "env"
	case r.File != "":
		return "file"
	case r.Keyring != nil:
		return "keyring"
	case r.AWS != nil:
		return "aws"
	default:
		return ""
	}
}

// Describe returns a human-readable location that never includes key material
func (r Reference) Describe() string {
	switch r.Kind() {
	case "env":
		return "env:" + r.Env
	case "file":
		if r.File == "-" {
			return "file:<stdin>"
		}
		return "file:" + r.File
	case "keyring":
		return fmt.Sprintf("keyring:%s/%s", r.Keyring.Service, r.Keyring.Account)
	case "aws":
		return "aws:" + r.AWS.SecretID
	default:
		return "unknown"
	}
}

// SupportedSizes lists the key sizes a manifest may request
var SupportedSizes = []int{16, 24, 32, 48, 64}

// Load reads and validates the manifest at c.Path
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return dserrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "manifest file not found",
				Suggestion: "Create a fixedsecret.yaml or pass --config",
			}
		}
		return dserrors.UserError{
			Message:    "Failed to read manifest file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	m, err := Parse(data)
	if err != nil {
		return err
	}

	c.Manifest = m
	return nil
}

// Parse validates data against the manifest schema and decodes it
func Parse(data []byte) (*Manifest, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, dserrors.ConfigError{
			Message:    "invalid YAML syntax in manifest",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}

	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, dserrors.ConfigError{
			Message:    "manifest does not match the expected structure",
			Suggestion: err.Error(),
		}
	}

	for name, key := range m.Keys {
		key.Name = name
		if key.Encoding == "" {
			key.Encoding = EncodingRaw
		}
		m.Keys[name] = key
	}

	return &m, nil
}

func validateSchema(doc interface{}) error {
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return dserrors.ConfigError{
			Message:    "manifest cannot be represented as JSON",
			Suggestion: "Use string keys only",
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(manifestSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		first := result.Errors()[0]
		return dserrors.ConfigError{
			Field:      strings.TrimPrefix(first.Field(), "(root)."),
			Message:    "manifest failed validation:\n  - " + strings.Join(problems, "\n  - "),
			Suggestion: "Supported sizes are 16, 24, 32, 48 and 64; each key needs exactly one of env, file, keyring or aws",
		}
	}

	return nil
}

// GetKey returns the named key
func (c *Config) GetKey(name string) (Key, error) {
	if c.Manifest == nil {
		return Key{}, dserrors.ConfigError{Message: "manifest not loaded"}
	}
	key, ok := c.Manifest.Keys[name]
	if !ok {
		return Key{}, dserrors.ConfigError{
			Field:      "keys",
			Value:      name,
			Message:    "key not defined in manifest",
			Suggestion: fmt.Sprintf("Defined keys: %s", strings.Join(c.KeyNames(), ", ")),
		}
	}
	return key, nil
}

// KeyNames returns the manifest's key names in sorted order
func (c *Config) KeyNames() []string {
	if c.Manifest == nil {
		return nil
	}
	names := make([]string, 0, len(c.Manifest.Keys))
	for name := range c.Manifest.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
