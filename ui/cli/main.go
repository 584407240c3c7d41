// Copyright (c) 2026 ToeiRei
// udtc - UTF-8 double transposition cipher
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command: flags, configuration and the cipher run
// itself. Subcommands live in their own files.

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/toeirei/udtc/core/cipher"
	"github.com/toeirei/udtc/core/security"
	"github.com/toeirei/udtc/core/transpose"
	"github.com/toeirei/udtc/internal/config"
	"github.com/toeirei/udtc/internal/fileio"
	"github.com/toeirei/udtc/internal/i18n"
	"github.com/toeirei/udtc/internal/keysource"
	"github.com/toeirei/udtc/internal/logging"
)

type rootOptions struct {
	output  string
	mode    modeChoice
	keys    []string
	verbose bool
}

// newKeySource returns the interactive key source. stdin is the reader the
// input text is read from as well. Tests replace it.
var newKeySource = func(cmd *cobra.Command, stdin io.Reader) keysource.Source {
	return keysource.NewTerminal(stdin, cmd.ErrOrStderr())
}

// Execute runs the CLI entrypoint. The main package should call this
// function and handle process exit.
func Execute() error {
	fileio.InstallSignalHandler()
	return NewRootCmd().Execute()
}

// NewRootCmd creates and configures a new root cobra command. Every call
// returns an independent tree, which keeps tests isolated.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "udtc [flags] [file]",
		Short: "udtc is a UTF-8 aware double columnar transposition cipher.",
		Long: `udtc reads UTF-8 text from FILE (or standard input), permutes its
characters with one or two keys and writes the result to standard output
or to the file named by --output.

Keys are read from the controlling terminal without echo. Encryption
transposes with key1 and then key2; decryption undoes key2 and then key1.
Input compressed with zstd is recognized and decompressed automatically.

This is a classical cipher. It scrambles text but offers no modern
security guarantees.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCipher(cmd, args, opts)
		},
	}

	cmd.Version = compositeVersion()
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(c.UsageString())
		return err
	})

	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().String("language", "en", `Message language ("en", "de")`)
	cmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	flags := cmd.Flags()
	flags.BoolP("version", "V", false, "Print version and exit")
	flags.BoolP("simple", "1", false, "Use a single key instead of two")
	for _, mf := range []struct {
		name, short, usage string
		value              cipher.Mode
	}{
		{"decrypt", "d", "Decrypt the input", cipher.ModeDecrypt},
		{"encrypt", "e", "Encrypt the input (default)", cipher.ModeEncrypt},
	} {
		f := flags.VarPF(&modeValue{choice: &opts.mode, value: mf.value}, mf.name, mf.short, mf.usage)
		f.NoOptDefVal = "true"
		_ = flags.SetAnnotation(mf.name, config.SkipBinding, []string{"true"})
	}
	flags.StringVarP(&opts.output, "output", "o", "", "Write the result to this file instead of standard output")
	flags.StringArrayVar(&opts.keys, "key", nil, "Key to use instead of prompting (repeat for key2; visible to other local users)")
	flags.Bool("zstd", false, "Compress the output with zstd")
	flags.String("zstd-level", "default", "zstd level: fastest, default, better, best")
	flags.Int("key-max-length", keysource.DefaultMaxLen, "Longest accepted key in bytes")

	cmd.AddCommand(
		newVersionCmd(),
		newDebugCmd(),
		newConfigCmd(),
	)

	return cmd
}

// getConfigPathFromCli returns the --config path when the user set one.
func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// loadConfig resolves the effective configuration and applies its ambient
// settings (language, log level).
func loadConfig(cmd *cobra.Command, verbose bool) (config.Config, error) {
	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return config.Config{}, err
	}
	c, err := config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if err != nil {
		return c, newCLIError(err, "cli.error_config", err)
	}
	if c.KeyMaxLength <= 0 {
		c.KeyMaxLength = keysource.DefaultMaxLen
	}
	if c.Language == "" {
		c.Language = "en"
	}

	i18n.Init(c.Language)
	logging.SetOutput(cmd.ErrOrStderr())
	if err := logging.SetLevel(c.LogLevel); err != nil {
		return c, err
	}
	if verbose {
		logging.SetDebug(true)
	}
	return c, nil
}

func runCipher(cmd *cobra.Command, args []string, opts *rootOptions) error {
	c, err := loadConfig(cmd, opts.verbose)
	if err != nil {
		return err
	}

	mode := cipher.ModeEncrypt
	if c.Decrypt {
		mode = cipher.ModeDecrypt
	}
	if opts.mode.set {
		mode = opts.mode.mode
	}
	nkeys := 2
	if c.Simple {
		nkeys = 1
	}

	var inPath string
	if len(args) == 1 {
		inPath = args[0]
	}
	// Key lines and text may share stdin; both must consume one buffer.
	stdin := bufio.NewReader(cmd.InOrStdin())
	in, err := fileio.OpenInput(inPath, stdin)
	if err != nil {
		return newCLIError(err, "cli.error_open_input", inPath, reason(err))
	}
	defer func() { _ = in.Close() }()

	out, err := openOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	defer out.Abort()

	secrets, err := readKeys(cmd, stdin, opts.keys, nkeys, c.KeyMaxLength)
	if err != nil {
		return err
	}
	defer security.ZeroAll(secrets)
	keys := make([]transpose.Key, len(secrets))
	for i, s := range secrets {
		keys[i] = s.Key()
	}

	src, release, err := fileio.MaybeDecompress(in)
	if err != nil {
		return newCLIError(err, "cli.error_read", err)
	}
	defer release()

	var dst io.Writer = out
	var zw io.WriteCloser
	if c.Zstd {
		if zw, err = fileio.Compress(out, c.ZstdLevel); err != nil {
			return newCLIError(err, "cli.error_zstd", err)
		}
		dst = zw
	}

	logging.Debugf("%s with %d key(s)", mode, nkeys)
	st, err := cipher.Process(src, dst, mode, keys...)
	if err != nil {
		return describe(err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return newCLIError(err, "cli.error_write", err)
		}
	}
	if err := out.Commit(); err != nil {
		return newCLIError(err, "cli.error_write", err)
	}
	logging.Debugf("%s", i18n.T("cli.stats", mode, st.InputBytes, st.CodePoints, st.OutputBytes))
	return nil
}

func openOutput(cmd *cobra.Command, path string) (fileio.Output, error) {
	if path == "" || path == "-" {
		return fileio.Stdout(cmd.OutOrStdout()), nil
	}
	f, err := fileio.Create(path)
	if err != nil {
		return nil, newCLIError(err, "cli.error_open_output", path, reason(err))
	}
	return f, nil
}

// readKeys returns n keys, taken from --key values when given and from the
// interactive source otherwise.
func readKeys(cmd *cobra.Command, stdin io.Reader, given []string, n, maxLen int) ([]security.Secret, error) {
	var src keysource.Source
	if len(given) > 0 {
		if len(given) != n {
			return nil, newCLIError(keysource.ErrNoInput, "cli.error_key_count", n, len(given))
		}
		src = keysource.NewStatic(given...)
	} else {
		src = newKeySource(cmd, stdin)
	}

	prompts := make([]string, n)
	for i := range prompts {
		prompts[i] = i18n.T("cli.prompt_key", i+1)
	}
	keys, err := keysource.Acquire(src, prompts, maxLen)
	if err != nil {
		return nil, describeKeyError(err, maxLen)
	}
	return keys, nil
}
