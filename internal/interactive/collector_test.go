package interactive

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"toolwizard-cli/internal/interfaces"
)

// newTestCollector builds a collector that reads scripted answers from
// a string instead of a terminal, one answer per line.
func newTestCollector(script string, cfg *interfaces.Config, fs afero.Fs) (*Collector, *bytes.Buffer) {
	if cfg == nil {
		cfg = &interfaces.Config{
			OutputPath:     interfaces.DefaultOutputPath,
			InputExtension: interfaces.DefaultInputExtension,
		}
	}
	if fs == nil {
		fs = afero.NewMemMapFs()
	}

	out := &bytes.Buffer{}
	return &Collector{
		cfg:         cfg,
		fs:          fs,
		in:          bufio.NewReader(strings.NewReader(script)),
		out:         out,
		interactive: false,
	}, out
}

func TestCollector_Collect_Cancelled(t *testing.T) {
	for _, answer := range []string{"n", "N", "no", "NO"} {
		t.Run(answer, func(t *testing.T) {
			collector, _ := newTestCollector(answer+"\n", nil, nil)

			cfg, err := collector.Collect()
			if !errors.Is(err, ErrCancelled) {
				t.Errorf("Collect() error = %v, want ErrCancelled", err)
			}
			if cfg != nil {
				t.Errorf("Collect() config = %+v, want nil on cancellation", cfg)
			}
		})
	}
}

func TestCollector_Collect_FullRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/readings.mat", []byte("1.0,2.0,3.0"), 0644); err != nil {
		t.Fatalf("Failed to seed input file: %v", err)
	}

	script := "y\nDataProcessor\n\n/data/readings.mat\n"
	collector, out := newTestCollector(script, nil, fs)

	cfg, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if !cfg.CreateTool {
		t.Error("CreateTool = false, want true")
	}
	if cfg.Name != "DataProcessor" {
		t.Errorf("Name = %q, want DataProcessor", cfg.Name)
	}
	if cfg.OutputPath != interfaces.DefaultOutputPath {
		t.Errorf("OutputPath = %q, want default %q", cfg.OutputPath, interfaces.DefaultOutputPath)
	}
	if cfg.InputFile != "/data/readings.mat" {
		t.Errorf("InputFile = %q, want /data/readings.mat", cfg.InputFile)
	}

	// The recap after the last stage shows all collected values.
	for _, want := range []string{"DataProcessor", interfaces.DefaultOutputPath, "/data/readings.mat"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output missing %q:\n%s", want, out.String())
		}
	}
}

func TestCollector_Collect_RetriesInvalidAnswers(t *testing.T) {
	// Stage one rejects a stray token, stage two walks through three
	// distinct rejections before a valid name arrives.
	script := "maybe\ny\n\n123\nAl\nAlice\n\n\n"
	collector, out := newTestCollector(script, nil, nil)

	cfg, err := collector.Collect()
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if cfg.Name != "Alice" {
		t.Errorf("Name = %q, want Alice", cfg.Name)
	}
	if cfg.InputFile != "" {
		t.Errorf("InputFile = %q, want empty", cfg.InputFile)
	}

	// Each rejection names its own rule, in the order they fired.
	output := out.String()
	messages := []string{
		"please answer Y or N",
		"tool name cannot be empty",
		"tool name may contain only letters and spaces",
		"tool name too short",
	}
	last := -1
	for _, msg := range messages {
		idx := strings.Index(output, msg)
		if idx < 0 {
			t.Errorf("Output missing %q:\n%s", msg, output)
			continue
		}
		if idx < last {
			t.Errorf("Message %q appeared out of order", msg)
		}
		last = idx
	}
}

func TestCollector_PromptForOutputPath(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		setup      func(fs afero.Fs)
		want       string
		wantOutput string
	}{
		{
			name:   "empty input takes the configured default verbatim",
			script: "\n",
			want:   interfaces.DefaultOutputPath,
		},
		{
			name:   "existing directory accepted",
			script: "/out\n",
			setup: func(fs afero.Fs) {
				fs.MkdirAll("/out", 0755)
			},
			want: "/out",
		},
		{
			name:   "missing directory under existing parent accepted silently",
			script: "/data/newdir\n",
			setup: func(fs afero.Fs) {
				fs.MkdirAll("/data", 0755)
			},
			want: "/data/newdir",
		},
		{
			name:   "existing file rejected then fallback accepted",
			script: "/out.txt\n/fallback\n",
			setup: func(fs afero.Fs) {
				afero.WriteFile(fs, "/out.txt", []byte("x"), 0644)
			},
			want:       "/fallback",
			wantOutput: "/out.txt exists and is not a directory",
		},
		{
			name:       "missing parents approved",
			script:     "/deep/nested/dir\ny\n",
			want:       "/deep/nested/dir",
			wantOutput: "Parent directory /deep/nested does not exist.",
		},
		{
			name:   "missing parents declined falls back to asking again",
			script: "/deep/nested/dir\nn\n/out\n",
			setup: func(fs afero.Fs) {
				fs.MkdirAll("/out", 0755)
			},
			want:       "/out",
			wantOutput: "Okay, let's pick a different location.",
		},
		{
			name:   "unparseable answer to parent question counts as decline",
			script: "/deep/nested/dir\nwhatever\n/out\n",
			setup: func(fs afero.Fs) {
				fs.MkdirAll("/out", 0755)
			},
			want:       "/out",
			wantOutput: "Okay, let's pick a different location.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.setup != nil {
				tt.setup(fs)
			}
			collector, out := newTestCollector(tt.script, nil, fs)

			got, err := collector.promptForOutputPath()
			if err != nil {
				t.Fatalf("promptForOutputPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("promptForOutputPath() = %q, want %q", got, tt.want)
			}
			if tt.wantOutput != "" && !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("Output missing %q:\n%s", tt.wantOutput, out.String())
			}
		})
	}
}

func TestCollector_PromptForOutputPath_NoParentQuestionWhenParentExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	fs.MkdirAll("/data", 0755)
	collector, out := newTestCollector("/data/newdir\n", nil, fs)

	if _, err := collector.promptForOutputPath(); err != nil {
		t.Fatalf("promptForOutputPath() error = %v", err)
	}
	if strings.Contains(out.String(), "Create missing directories?") {
		t.Errorf("Parent question asked for a path whose parent exists:\n%s", out.String())
	}
}

func TestCollector_PromptForInputFile(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		setup      func(fs afero.Fs)
		want       string
		wantOutput string
	}{
		{
			name:   "empty input means no data file",
			script: "\n",
			want:   "",
		},
		{
			name:       "missing file rejected then skipped",
			script:     "/missing.mat\n\n",
			want:       "",
			wantOutput: "input file not found: /missing.mat",
		},
		{
			name:   "directory rejected",
			script: "/inputs\n\n",
			setup: func(fs afero.Fs) {
				fs.MkdirAll("/inputs", 0755)
			},
			want:       "",
			wantOutput: "/inputs is a directory, not a file",
		},
		{
			name:   "wrong extension rejected",
			script: "/notes.txt\n\n",
			setup: func(fs afero.Fs) {
				afero.WriteFile(fs, "/notes.txt", []byte("hello"), 0644)
			},
			want:       "",
			wantOutput: "input file must have .mat extension",
		},
		{
			name:   "empty file rejected",
			script: "/empty.mat\n\n",
			setup: func(fs afero.Fs) {
				afero.WriteFile(fs, "/empty.mat", []byte{}, 0644)
			},
			want:       "",
			wantOutput: "input file is empty: /empty.mat",
		},
		{
			name:   "valid file accepted",
			script: "/data/readings.mat\n",
			setup: func(fs afero.Fs) {
				afero.WriteFile(fs, "/data/readings.mat", []byte("1.0"), 0644)
			},
			want: "/data/readings.mat",
		},
		{
			name:   "quoted path unwrapped before checking",
			script: "\"/data/readings.mat\"\n",
			setup: func(fs afero.Fs) {
				afero.WriteFile(fs, "/data/readings.mat", []byte("1.0"), 0644)
			},
			want: "/data/readings.mat",
		},
		{
			name:   "extension comparison ignores case",
			script: "/data/READINGS.MAT\n",
			setup: func(fs afero.Fs) {
				afero.WriteFile(fs, "/data/READINGS.MAT", []byte("1.0"), 0644)
			},
			want: "/data/READINGS.MAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			if tt.setup != nil {
				tt.setup(fs)
			}
			collector, out := newTestCollector(tt.script, nil, fs)

			got, err := collector.promptForInputFile()
			if err != nil {
				t.Fatalf("promptForInputFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("promptForInputFile() = %q, want %q", got, tt.want)
			}
			if tt.wantOutput != "" && !strings.Contains(out.String(), tt.wantOutput) {
				t.Errorf("Output missing %q:\n%s", tt.wantOutput, out.String())
			}
		})
	}
}

func TestCollector_PromptForOutputPath_CustomDefault(t *testing.T) {
	cfg := &interfaces.Config{
		OutputPath:     "/configured/tools",
		InputExtension: ".mat",
	}
	collector, _ := newTestCollector("\n", cfg, nil)

	got, err := collector.promptForOutputPath()
	if err != nil {
		t.Fatalf("promptForOutputPath() error = %v", err)
	}
	if got != "/configured/tools" {
		t.Errorf("promptForOutputPath() = %q, want configured default", got)
	}
}

func TestCollector_MaxAttempts(t *testing.T) {
	cfg := &interfaces.Config{
		OutputPath:     interfaces.DefaultOutputPath,
		InputExtension: interfaces.DefaultInputExtension,
		MaxAttempts:    2,
	}
	collector, _ := newTestCollector("1\n2\nValid\n", cfg, nil)

	_, err := collector.promptForName()
	if err == nil {
		t.Fatal("promptForName() error = nil, want abort after retry cap")
	}
	if !strings.Contains(err.Error(), "aborting after 2 invalid attempts") {
		t.Errorf("promptForName() error = %v, want attempt cap message", err)
	}
}

func TestCollector_UnlimitedAttemptsByDefault(t *testing.T) {
	// Five bad answers then a good one; a zero cap never aborts.
	collector, _ := newTestCollector("1\n2\n3\n4\n5\nValid\n", nil, nil)

	got, err := collector.promptForName()
	if err != nil {
		t.Fatalf("promptForName() error = %v", err)
	}
	if got != "Valid" {
		t.Errorf("promptForName() = %q, want Valid", got)
	}
}

func TestCollector_ReadLine_EOF(t *testing.T) {
	// A final line without a trailing newline is still an answer.
	collector, _ := newTestCollector("y", nil, nil)
	proceed, err := collector.confirmCreate()
	if err != nil {
		t.Fatalf("confirmCreate() error = %v", err)
	}
	if !proceed {
		t.Error("confirmCreate() = false, want true")
	}

	// Input that ends before any answer is a hard error, not a retry.
	collector, _ = newTestCollector("", nil, nil)
	if _, err := collector.confirmCreate(); err == nil {
		t.Error("confirmCreate() error = nil, want error on exhausted input")
	} else if !strings.Contains(err.Error(), "input ended before the dialogue finished") {
		t.Errorf("confirmCreate() error = %v, want exhausted input message", err)
	}
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		answer  string
		want    bool
		wantErr bool
	}{
		{"y", true, false},
		{"Y", true, false},
		{"yes", true, false},
		{"YES", true, false},
		{" y ", true, false},
		{"n", false, false},
		{"N", false, false},
		{"no", false, false},
		{"NO", false, false},
		{"", false, true},
		{"maybe", false, true},
		{"yep", false, true},
		{"1", false, true},
	}

	for _, tt := range tests {
		got, err := parseYesNo(tt.answer)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseYesNo(%q) error = %v, wantErr %v", tt.answer, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseYesNo(%q) = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestCheckName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid name", "Alice", ""},
		{"valid with spaces", "Data Processor", ""},
		{"minimum length", "Abe", ""},
		{"maximum length", strings.Repeat("a", 50), ""},
		{"unicode letters counted as runes", "日本語ツール", ""},
		{"empty", "", "tool name cannot be empty"},
		{"digits", "abc1", "tool name may contain only letters and spaces"},
		{"punctuation", "read-me", "tool name may contain only letters and spaces"},
		{"too short", "Al", "tool name too short (minimum 3 characters)"},
		{"too long", strings.Repeat("a", 51), "tool name too long (maximum 50 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkName(tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("checkName(%q) = %v, want nil", tt.input, err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("checkName(%q) = %v, want %q", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"/data/file.mat"`, "/data/file.mat"},
		{`'/data/file.mat'`, "/data/file.mat"},
		{`"/data/file.mat'`, `"/data/file.mat'`},
		{`"`, `"`},
		{"/data/file.mat", "/data/file.mat"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := stripQuotes(tt.input); got != tt.want {
			t.Errorf("stripQuotes(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
