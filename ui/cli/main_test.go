// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/toeirei/udtc/core/cipher"
	"github.com/toeirei/udtc/core/codec"
	"github.com/toeirei/udtc/core/security"
	"github.com/toeirei/udtc/core/transpose"
	"github.com/toeirei/udtc/internal/fileio"
	"github.com/toeirei/udtc/internal/keysource"
	"github.com/toeirei/udtc/internal/logging"
)

// executeCommand runs a fresh root command with isolated config locations.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeCommandIn(t, t.TempDir(), stdin, args...)
}

// executeCommandIn is executeCommand with a caller-chosen config home.
func executeCommandIn(t *testing.T, home, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	orig := logging.L
	logging.L = logging.New(io.Discard)
	t.Cleanup(func() { logging.L = orig })

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func encrypted(t *testing.T, text string, keys ...string) string {
	t.Helper()
	ks := make([]transpose.Key, len(keys))
	for i, k := range keys {
		ks[i] = transpose.Key(k)
	}
	out, err := cipher.Encrypt([]rune(text), ks...)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	return string(out)
}

const plain = "Hello, Wörld! Transposition keeps every 🌍 code point intact."

func TestRun_EncryptToStdout(t *testing.T) {
	out, _, err := executeCommand(t, plain, "--key", "alpha", "--key", "beta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := encrypted(t, plain, "alpha", "beta"); out != want {
		t.Fatalf("unexpected output:\n got %q\nwant %q", out, want)
	}
}

func TestRun_DecryptRoundTripThroughFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plain.txt")
	enc := filepath.Join(dir, "cipher.txt")
	if err := os.WriteFile(in, []byte(plain), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := executeCommand(t, "", "-o", enc, "--key", "k1", "--key", "k2", in); err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	info, err := os.Stat(enc)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}

	out, _, err := executeCommand(t, "", "-d", "--key", "k1", "--key", "k2", enc)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if out != plain {
		t.Fatalf("round trip mismatch: %q", out)
	}
}

func TestRun_SimpleModeUsesOneKey(t *testing.T) {
	out, _, err := executeCommand(t, plain, "-1", "--key", "solo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := encrypted(t, plain, "solo"); out != want {
		t.Fatalf("unexpected output %q", out)
	}

	_, _, err = executeCommand(t, plain, "-1", "--key", "a", "--key", "b")
	if err == nil || !strings.Contains(err.Error(), "expected 1 key(s), got 2") {
		t.Fatalf("expected key count error, got %v", err)
	}
}

func TestRun_LastModeFlagWins(t *testing.T) {
	enc := encrypted(t, plain, "a1", "b2")

	out, _, err := executeCommand(t, plain, "-d", "-e", "--key", "a1", "--key", "b2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != enc {
		t.Fatalf("-d -e should encrypt, got %q", out)
	}

	out, _, err = executeCommand(t, enc, "-e", "-d", "--key", "a1", "--key", "b2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != plain {
		t.Fatalf("-e -d should decrypt, got %q", out)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	out, _, err := executeCommand(t, "", "--key", "a", "--key", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}

	path := filepath.Join(t.TempDir(), "empty.txt")
	if _, _, err := executeCommand(t, "", "-o", path, "--key", "a", "--key", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected empty output file to exist: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected empty file, got %q", data)
	}
}

func TestRun_InvalidUTF8LeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	_, _, err := executeCommand(t, "ok\xff", "-o", path, "--key", "a", "--key", "b")
	if !errors.Is(err, codec.ErrInvalidEncoding) {
		t.Fatalf("expected invalid encoding error, got %v", err)
	}
	if err.Error() != "bad input utf8 sequence at byte 2" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("expected no files to be left behind, found %d", len(entries))
	}

	_, _, err = executeCommand(t, "ok\xe2\x82", "--key", "a", "--key", "b")
	if err == nil || err.Error() != "bad input utf8 last sequence" {
		t.Fatalf("expected truncated tail message, got %v", err)
	}
}

func TestRun_KeyErrors(t *testing.T) {
	_, _, err := executeCommand(t, plain, "--key", "a", "--key", "")
	if err == nil || err.Error() != "key2 has length zero" {
		t.Fatalf("expected empty key2 error, got %v", err)
	}
	if !errors.Is(err, keysource.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey in chain")
	}

	_, _, err = executeCommand(t, plain, "-1", "--key-max-length", "3", "--key", "abcd")
	if err == nil || err.Error() != "key1 is longer than 3 bytes" {
		t.Fatalf("expected too long error, got %v", err)
	}

	_, _, err = executeCommand(t, plain, "--key", "only")
	if err == nil || err.Error() != "expected 2 key(s), got 1" {
		t.Fatalf("expected key count error, got %v", err)
	}

	_, _, err = executeCommand(t, plain, "--language", "de", "--key", "a", "--key", "")
	if err == nil || err.Error() != "Schlüssel2 ist leer" {
		t.Fatalf("expected localized message, got %v", err)
	}
}

func TestRun_MissingInputFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")
	_, _, err := executeCommand(t, "", "--key", "a", "--key", "b", missing)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), "could not open input file '"+missing+"'") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRun_ZstdRoundTrip(t *testing.T) {
	dir := t.TempDir()
	packed := filepath.Join(dir, "cipher.zst")

	if _, _, err := executeCommand(t, plain, "--zstd", "-o", packed, "--key", "x", "--key", "y"); err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	data, err := os.ReadFile(packed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0x28, 0xb5, 0x2f, 0xfd}) {
		t.Fatalf("expected zstd frame, got % x", data[:min(4, len(data))])
	}

	out, _, err := executeCommand(t, "", "-d", "--key", "x", "--key", "y", packed)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if out != plain {
		t.Fatalf("round trip mismatch: %q", out)
	}
}

type recordingSource struct {
	prompts []string
	keys    []string
}

func (r *recordingSource) ReadKey(prompt string) (security.Secret, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.keys) == 0 {
		return nil, keysource.ErrNoInput
	}
	k := r.keys[0]
	r.keys = r.keys[1:]
	return security.FromString(k), nil
}

func TestRun_PromptsForKeys(t *testing.T) {
	src := &recordingSource{keys: []string{"first", "second"}}
	orig := newKeySource
	newKeySource = func(*cobra.Command, io.Reader) keysource.Source { return src }
	t.Cleanup(func() { newKeySource = orig })

	out, _, err := executeCommand(t, plain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := encrypted(t, plain, "first", "second"); out != want {
		t.Fatalf("unexpected output %q", out)
	}
	if strings.Join(src.prompts, "|") != "key1: |key2: " {
		t.Fatalf("unexpected prompts %q", src.prompts)
	}

	src = &recordingSource{}
	_, _, err = executeCommand(t, plain)
	if err == nil || !strings.HasPrefix(err.Error(), "could not read key1") {
		t.Fatalf("expected key read error, got %v", err)
	}
}

func TestRun_ConfigFileAndEnv(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "udtc.yaml")
	if err := os.WriteFile(cfgPath, []byte("simple: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err := executeCommand(t, plain, "--config", cfgPath, "--key", "solo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := encrypted(t, plain, "solo"); out != want {
		t.Fatalf("config simple mode not applied: %q", out)
	}

	t.Setenv("UDTC_DECRYPT", "true")
	enc := encrypted(t, plain, "a", "b")
	out, _, err = executeCommand(t, enc, "--key", "a", "--key", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != plain {
		t.Fatalf("UDTC_DECRYPT not applied: %q", out)
	}

	// An explicit flag beats the environment.
	out, _, err = executeCommand(t, plain, "-e", "--key", "a", "--key", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != enc {
		t.Fatalf("-e should override UDTC_DECRYPT: %q", out)
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	_, _, err := executeCommand(t, plain, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--key", "a", "--key", "b")
	if err == nil || !strings.Contains(err.Error(), "--config") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestRun_TooManyArgs(t *testing.T) {
	if _, _, err := executeCommand(t, "", "a.txt", "b.txt"); err == nil {
		t.Fatalf("expected error for two input files")
	}
}

func TestRun_KeysAndTextShareStdin(t *testing.T) {
	orig := newKeySource
	newKeySource = func(cmd *cobra.Command, stdin io.Reader) keysource.Source {
		return &keysource.Terminal{
			Path:     filepath.Join(t.TempDir(), "no-tty"),
			Fallback: keysource.NewLines(stdin, cmd.ErrOrStderr()),
		}
	}
	t.Cleanup(func() { newKeySource = orig })

	out, stderr, err := executeCommand(t, "k1\nk2\n"+plain)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := encrypted(t, plain, "k1", "k2"); out != want {
		t.Fatalf("text after the key lines was lost:\n got %q\nwant %q", out, want)
	}
	if !strings.Contains(stderr, "key1: ") || !strings.Contains(stderr, "key2: ") {
		t.Fatalf("expected prompts on stderr, got %q", stderr)
	}
}

func TestRun_ReadErrorsAreLocalized(t *testing.T) {
	dir := t.TempDir()
	_, _, err := executeCommand(t, "", "--key", "a", "--key", "b", dir)
	if err == nil || !strings.HasPrefix(err.Error(), "read error -- ") {
		t.Fatalf("expected localized read error for a directory, got %v", err)
	}

	var packed bytes.Buffer
	zw, err := fileio.Compress(&packed, "default")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = io.WriteString(zw, strings.Repeat(plain, 50))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	broken := filepath.Join(dir, "broken.zst")
	if err := os.WriteFile(broken, packed.Bytes()[:packed.Len()/2], 0o600); err != nil {
		t.Fatal(err)
	}
	_, _, err = executeCommand(t, "", "-d", "--key", "a", "--key", "b", broken)
	if err == nil || !strings.HasPrefix(err.Error(), "read error -- ") || strings.Contains(err.Error(), "read error: ") {
		t.Fatalf("expected localized read error for a truncated zstd frame, got %v", err)
	}
	var re *codec.ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected codec.ReadError in chain, got %T", err)
	}
}

func TestRun_FalseModeFlagKeepsConfiguredMode(t *testing.T) {
	t.Setenv("UDTC_DECRYPT", "true")
	enc := encrypted(t, plain, "a", "b")

	for _, flag := range []string{"-d=false", "--encrypt=false"} {
		out, _, err := executeCommand(t, enc, flag, "--key", "a", "--key", "b")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", flag, err)
		}
		if out != plain {
			t.Fatalf("%s must not override UDTC_DECRYPT, got %q", flag, out)
		}
	}
}

func TestHelpShowsNoModeDefault(t *testing.T) {
	out, _, err := executeCommand(t, "", "--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "--encrypt") {
		t.Fatalf("help should list --encrypt:\n%s", out)
	}
	if strings.Contains(out, "(default true)") {
		t.Fatalf("help must not show a default for the mode flags:\n%s", out)
	}
}
