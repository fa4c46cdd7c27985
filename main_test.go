package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/orayew2002/marriage-form/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTemplate(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", domain.SheetApplication))
	sheets := append([]string{domain.SheetNotice, domain.SheetAddressBack, domain.SheetEnvelope}, domain.ParentalSheets()...)
	for _, name := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "absent.env")))

	err := cmd.Execute()
	return out.String(), err
}

func TestFillRejectsBadInput(t *testing.T) {
	template := writeTemplate(t)

	tests := []struct {
		name  string
		stdin string
		want  error
	}{
		{"empty", "", domain.ErrNoInput},
		{"whitespace", " \n\t ", domain.ErrNoInput},
		{"malformed", `{"gFirst": `, domain.ErrInvalidInput},
		{"array", `[1, 2]`, domain.ErrInvalidInput},
		{"null", `null`, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, "--template", template)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, out)
		})
	}
}

func TestFillMissingTemplateWritesNothing(t *testing.T) {
	out, err := execute(t, `{"gFirst":"Juan"}`, "--template", filepath.Join(t.TempDir(), "absent.xlsx"))
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestFillWritesWorkbookToStdout(t *testing.T) {
	out, err := execute(t, `{"gFirst":"Juan","gAge":"19","bAge":30,"gTown":"Bayombong","bTown":"Solano"}`,
		"--template", writeTemplate(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(strings.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{
		domain.SheetApplication, domain.SheetNotice, domain.SheetConsentM,
		domain.SheetAddressBack, domain.SheetEnvelope,
	}, f.GetSheetList())

	v, err := f.GetCellValue(domain.SheetApplication, "B8")
	require.NoError(t, err)
	assert.Equal(t, "JUAN", v)
}

func TestFillOutputDirectoryNamesFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(t.TempDir(), "app.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"applicationCode":"mls-000123"}`), 0o644))

	out, err := execute(t, "", "--template", writeTemplate(t), "--input", input, "--output", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	assert.FileExists(t, filepath.Join(dir, "MARRIAGE_APPLICATION_MLS-000123.xlsx"))
}

func TestFileCode(t *testing.T) {
	assert.Equal(t, "DRAFT", fileCode(""))
	assert.Equal(t, "DRAFT", fileCode("../"))
	assert.Equal(t, "MLS-42", fileCode("MLS-42"))
	assert.Equal(t, "AB12", fileCode("A/B 1.2"))
}

func TestPlanCommand(t *testing.T) {
	out, err := execute(t, `{"gAge":22,"bAge":19,"gTown":"Solano","bTown":"Solano"}`, "plan")
	require.NoError(t, err)

	var plan domain.Plan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, domain.SheetAdviceMConsent, plan.ParentalSheet)
	assert.False(t, plan.OutOfTown)
	assert.Equal(t, "advice", plan.GroomBand)
	assert.Equal(t, "consent", plan.BrideBand)
	assert.Equal(t, []string{domain.SheetApplication, domain.SheetNotice, domain.SheetAdviceMConsent}, plan.Keep)
}

func TestSampleCommandFeedsFill(t *testing.T) {
	sample, err := execute(t, "", "sample", "--groom-age", "20", "--bride-age", "26", "--groom-town", "Solano", "--bride-town", "Solano")
	require.NoError(t, err)

	plan, err := execute(t, sample, "plan")
	require.NoError(t, err)
	assert.Contains(t, plan, `"parentalSheet": "CONSENT M"`)
	assert.Contains(t, plan, `"outOfTown": false`)
}

const execMainEnv = "MARRIAGE_FORM_EXEC_MAIN"

// TestExecMain runs main in a child process started by runMain; it is a no-op otherwise.
func TestExecMain(t *testing.T) {
	args, ok := os.LookupEnv(execMainEnv)
	if !ok {
		t.Skip("only runs as a child of runMain")
	}

	os.Args = append([]string{"marriage-form"}, strings.Split(args, "\x1f")...)
	main()
}

// runMain re-executes the test binary as the CLI and returns stdout and the exit code.
func runMain(t *testing.T, stdin string, args ...string) ([]byte, int) {
	t.Helper()

	args = append(args, "--env-file", filepath.Join(t.TempDir(), "absent.env"))
	cmd := exec.Command(os.Args[0], "-test.run=^TestExecMain$")
	cmd.Env = append(os.Environ(), execMainEnv+"="+strings.Join(args, "\x1f"))
	cmd.Stdin = strings.NewReader(stdin)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &bytes.Buffer{}

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.Bytes(), exitErr.ExitCode()
	}
	require.NoError(t, err)
	return stdout.Bytes(), 0
}

func TestProcessExitCodes(t *testing.T) {
	template := writeTemplate(t)

	out, code := runMain(t, "", "--template", template)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)

	out, code = runMain(t, `{"gFirst": `, "--template", template)
	assert.Equal(t, 1, code)
	assert.Empty(t, out)

	out, code = runMain(t, `{"gFirst":"Juan"}`, "--template", template)
	assert.Equal(t, 0, code)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), domain.SheetApplication)
}
