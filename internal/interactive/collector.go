package interactive

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"unicode"
	"unicode/utf8"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"golang.org/x/term"
	"toolwizard-cli/internal/interfaces"
	"toolwizard-cli/pkg/models"
)

// ErrCancelled is returned by Collect when the user declines tool
// creation at the opening question. It is an outcome, not a failure;
// callers must check for it before validating.
var ErrCancelled = errors.New("wizard cancelled by user")

// stage identifies one phase of the collection dialogue. Stages run
// strictly in order and never transition backwards.
type stage int

const (
	stageConfirm stage = iota
	stageName
	stageOutputPath
	stageInputFile
)

// pathVerdict classifies a probed output path
type pathVerdict int

const (
	pathUsable pathVerdict = iota
	pathNeedsParents
)

// Collector runs the interactive dialogue that produces one validated
// tool configuration. On a terminal it prompts through survey;
// otherwise it reads lines from its input, so piped input and tests
// drive the same stage logic.
type Collector struct {
	cfg *interfaces.Config
	fs  afero.Fs

	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewCollector creates a collector reading from stdin
func NewCollector(cfg *interfaces.Config, fs afero.Fs) *Collector {
	return &Collector{
		cfg:         cfg,
		fs:          fs,
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(syscall.Stdin)),
	}
}

// Collect runs the four stages in order and returns the resulting
// configuration. Each stage re-prompts until its input is acceptable;
// a value accepted by a stage is final. Returns ErrCancelled when the
// user answers the opening question negatively.
func (c *Collector) Collect() (*models.ToolConfig, error) {
	cfg := &models.ToolConfig{}

	for st := stageConfirm; st <= stageInputFile; st++ {
		if err := c.runStage(st, cfg); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(c.out, "\n%s\n", cfg.Summary())
	return cfg, nil
}

// runStage executes a single stage against the configuration being built
func (c *Collector) runStage(st stage, cfg *models.ToolConfig) error {
	switch st {
	case stageConfirm:
		proceed, err := c.confirmCreate()
		if err != nil {
			return err
		}
		if !proceed {
			return ErrCancelled
		}
		cfg.CreateTool = true

	case stageName:
		name, err := c.promptForName()
		if err != nil {
			return err
		}
		cfg.Name = name

	case stageOutputPath:
		path, err := c.promptForOutputPath()
		if err != nil {
			return err
		}
		cfg.OutputPath = path

	case stageInputFile:
		file, err := c.promptForInputFile()
		if err != nil {
			return err
		}
		cfg.InputFile = file
	}

	return nil
}

// confirmCreate asks the opening yes/no question. Only an explicit
// yes or no token advances; anything else re-prompts.
func (c *Collector) confirmCreate() (bool, error) {
	attempts := 0
	for {
		answer, err := c.ask("Do you want to create a tool? (Y/N):")
		if err != nil {
			return false, err
		}

		create, parseErr := parseYesNo(answer)
		if parseErr == nil {
			return create, nil
		}

		c.reportInvalid(parseErr)
		if err := c.nextAttempt(&attempts); err != nil {
			return false, err
		}
	}
}

// promptForName collects the tool name, retrying until it passes all
// four shape checks
func (c *Collector) promptForName() (string, error) {
	attempts := 0
	for {
		answer, err := c.ask("What is the name of your tool?")
		if err != nil {
			return "", err
		}

		name := strings.TrimSpace(answer)
		if checkErr := checkName(name); checkErr != nil {
			c.reportInvalid(checkErr)
			if err := c.nextAttempt(&attempts); err != nil {
				return "", err
			}
			continue
		}

		return name, nil
	}
}

// promptForOutputPath collects the destination directory. Empty input
// takes the configured default verbatim; anything else is resolved
// absolute and probed.
func (c *Collector) promptForOutputPath() (string, error) {
	attempts := 0
	for {
		answer, err := c.ask("Where do you want to save the tool? Press enter for default:")
		if err != nil {
			return "", err
		}

		raw := strings.TrimSpace(answer)
		if raw == "" {
			return c.defaultOutputPath(), nil
		}

		abs, err := filepath.Abs(raw)
		if err != nil {
			c.reportInvalid(fmt.Errorf("cannot resolve path %q: %v", raw, err))
			if err := c.nextAttempt(&attempts); err != nil {
				return "", err
			}
			continue
		}

		verdict, probeErr := c.probeOutputPath(abs)
		if probeErr != nil {
			c.reportInvalid(probeErr)
			if err := c.nextAttempt(&attempts); err != nil {
				return "", err
			}
			continue
		}

		if verdict == pathNeedsParents {
			approved, err := c.confirmParentCreation(abs)
			if err != nil {
				return "", err
			}
			if !approved {
				fmt.Fprintln(c.out, "Okay, let's pick a different location.")
				if err := c.nextAttempt(&attempts); err != nil {
					return "", err
				}
				continue
			}
		}

		return abs, nil
	}
}

// probeOutputPath inspects an absolute candidate path. Usable means the
// directory exists or can be created directly under an existing parent.
func (c *Collector) probeOutputPath(abs string) (pathVerdict, error) {
	info, err := c.fs.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return pathUsable, nil
	case err == nil:
		return 0, fmt.Errorf("%s exists and is not a directory", abs)
	case !os.IsNotExist(err):
		return 0, fmt.Errorf("cannot inspect %s: %v", abs, err)
	}

	parent := filepath.Dir(abs)
	parentExists, err := afero.DirExists(c.fs, parent)
	if err != nil {
		return 0, fmt.Errorf("cannot inspect %s: %v", parent, err)
	}
	if parentExists {
		return pathUsable, nil
	}
	return pathNeedsParents, nil
}

// confirmParentCreation asks once whether missing parent directories
// may be created. Only an explicit yes approves; any other answer sends
// the dialogue back to the output path question.
func (c *Collector) confirmParentCreation(abs string) (bool, error) {
	message := fmt.Sprintf("Parent directory %s does not exist. Create missing directories? (Y/N):", filepath.Dir(abs))
	answer, err := c.ask(message)
	if err != nil {
		return false, err
	}

	yes, parseErr := parseYesNo(answer)
	return parseErr == nil && yes, nil
}

// promptForInputFile collects the optional data file. Empty input means
// none; a given path must exist, be a regular file with the configured
// extension, and yield at least one readable byte.
func (c *Collector) promptForInputFile() (string, error) {
	attempts := 0
	for {
		answer, err := c.ask("What is the path of your input file? (press enter if not applicable):")
		if err != nil {
			return "", err
		}

		path := strings.TrimSpace(stripQuotes(strings.TrimSpace(answer)))
		if path == "" {
			return "", nil
		}

		if checkErr := c.checkInputFile(path); checkErr != nil {
			c.reportInvalid(checkErr)
			if err := c.nextAttempt(&attempts); err != nil {
				return "", err
			}
			continue
		}

		return path, nil
	}
}

// checkInputFile runs the input file checks in their fixed order so the
// first failure is the one reported
func (c *Collector) checkInputFile(path string) error {
	info, err := c.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input file not found: %s", path)
		}
		return fmt.Errorf("cannot inspect %s: %v", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}

	ext := c.requiredExtension()
	if !strings.EqualFold(filepath.Ext(path), ext) {
		return fmt.Errorf("input file must have %s extension", ext)
	}

	file, err := c.fs.Open(path)
	if err != nil {
		return fmt.Errorf("input file is not readable: %v", err)
	}
	defer file.Close()

	buf := make([]byte, 1)
	if n, readErr := file.Read(buf); n < 1 {
		if readErr != nil && readErr != io.EOF {
			return fmt.Errorf("input file is not readable: %v", readErr)
		}
		return fmt.Errorf("input file is empty: %s", path)
	}

	return nil
}

// ask poses one question and returns the raw answer line
func (c *Collector) ask(message string) (string, error) {
	if c.interactive {
		prompt := &survey.Input{
			Message: message,
		}

		var answer string
		if err := survey.AskOne(prompt, &answer); err != nil {
			return "", err
		}
		return answer, nil
	}

	return c.readLine(message)
}

// readLine is the non-terminal fallback: print the question, read one line
func (c *Collector) readLine(message string) (string, error) {
	fmt.Fprintf(c.out, "%s ", message)

	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("input ended before the dialogue finished: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// reportInvalid tells the user why the answer was rejected
func (c *Collector) reportInvalid(cause error) {
	fmt.Fprintf(c.out, "Error: %v\n", cause)
}

// nextAttempt counts a failed answer against the optional retry cap.
// A zero cap retries forever.
func (c *Collector) nextAttempt(attempts *int) error {
	*attempts++
	if c.cfg != nil && c.cfg.MaxAttempts > 0 && *attempts >= c.cfg.MaxAttempts {
		return fmt.Errorf("aborting after %d invalid attempts", *attempts)
	}
	return nil
}

// defaultOutputPath returns the configured stage default
func (c *Collector) defaultOutputPath() string {
	if c.cfg != nil && c.cfg.OutputPath != "" {
		return c.cfg.OutputPath
	}
	return interfaces.DefaultOutputPath
}

// requiredExtension returns the configured input-file extension
func (c *Collector) requiredExtension() string {
	if c.cfg != nil && c.cfg.InputExtension != "" {
		return c.cfg.InputExtension
	}
	return interfaces.DefaultInputExtension
}

// parseYesNo maps an answer token onto a bool. Only the four tokens are
// accepted, case-insensitively.
func parseYesNo(answer string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(answer)) {
	case "Y", "YES":
		return true, nil
	case "N", "NO":
		return false, nil
	default:
		return false, fmt.Errorf("please answer Y or N")
	}
}

// checkName applies the four name rules in order: non-empty, letters
// and spaces only, minimum and maximum length
func checkName(name string) error {
	if name == "" {
		return errors.New("tool name cannot be empty")
	}
	if !lettersAndSpaces(name) {
		return errors.New("tool name may contain only letters and spaces")
	}

	length := utf8.RuneCountInString(name)
	if length < models.MinNameLength {
		return fmt.Errorf("tool name too short (minimum %d characters)", models.MinNameLength)
	}
	if length > models.MaxNameLength {
		return fmt.Errorf("tool name too long (maximum %d characters)", models.MaxNameLength)
	}

	return nil
}

func lettersAndSpaces(s string) bool {
	for _, r := range s {
		if r != ' ' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// stripQuotes removes one matching pair of surrounding quotes, the way
// paths arrive when dragged into a terminal
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
