package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	apperrors "github.com/garunski/stylestore/pkg/stylestore/errors"
	"github.com/garunski/stylestore/pkg/stylestore/style"
	sstesting "github.com/garunski/stylestore/pkg/stylestore/testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeStyleFile(t *testing.T, dir, name string, codec style.Codec) string {
	t.Helper()
	data, err := codec.Encode(sstesting.NewTestStyle(name))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	path := filepath.Join(dir, name+codec.Extension())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestStyleLifecycle(t *testing.T) {
	for _, backend := range []string{"file", "badger", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			data := t.TempDir()
			src := writeStyleFile(t, t.TempDir(), "roads", style.SLDCodec{})
			base := []string{"--backend", backend, "--data", data}

			out, err := run(t, append(base, "has", "roads")...)
			if err != nil || strings.TrimSpace(out) != "false" {
				t.Fatalf("has before put = %q, %v", out, err)
			}

			if _, err := run(t, append(base, "put", "roads", src)...); err != nil {
				t.Fatalf("put: %v", err)
			}

			out, err = run(t, append(base, "has", "roads")...)
			if err != nil || strings.TrimSpace(out) != "true" {
				t.Fatalf("has after put = %q, %v", out, err)
			}

			out, err = run(t, append(base, "get", "roads")...)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			got, err := style.SLDCodec{}.Decode([]byte(out))
			if err != nil {
				t.Fatalf("decode get output: %v", err)
			}
			if diff := cmp.Diff(sstesting.NewTestStyle("roads"), got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("get mismatch (-want +got):\n%s", diff)
			}

			out, err = run(t, append(base, "ls")...)
			if err != nil {
				t.Fatalf("ls: %v", err)
			}
			if diff := cmp.Diff("roads\n", out); diff != "" {
				t.Errorf("ls mismatch (-want +got):\n%s", diff)
			}

			if _, err := run(t, append(base, "rm", "roads")...); err != nil {
				t.Fatalf("rm: %v", err)
			}
			if _, err := run(t, append(base, "rm", "roads")...); err != nil {
				t.Fatalf("second rm: %v", err)
			}

			_, err = run(t, append(base, "get", "roads")...)
			if !errors.Is(err, apperrors.ErrNotFound) {
				t.Errorf("get after rm = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestPut_DecodesByFileExtension(t *testing.T) {
	data := t.TempDir()
	src := writeStyleFile(t, t.TempDir(), "rivers", style.YAMLCodec{})

	if _, err := run(t, "--data", data, "put", "rivers", src); err != nil {
		t.Fatalf("put yaml into sld store: %v", err)
	}
	if _, err := os.Stat(filepath.Join(data, "rivers.sld")); err != nil {
		t.Errorf("expected sidecar rivers.sld: %v", err)
	}

	out, err := run(t, "--data", data, "get", "rivers", "--format", "yaml")
	if err != nil {
		t.Fatalf("get yaml: %v", err)
	}
	got, err := style.YAMLCodec{}.Decode([]byte(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(sstesting.NewTestStyle("rivers"), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestPut_Errors(t *testing.T) {
	data := t.TempDir()

	if _, err := run(t, "--data", data, "put", "roads", filepath.Join(data, "missing.sld")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.sld")
	if err := os.WriteFile(bad, []byte("<not-a-style"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "--data", data, "put", "roads", bad)
	if !errors.Is(err, apperrors.ErrDecode) {
		t.Errorf("put bad file = %v, want ErrDecode", err)
	}

	src := writeStyleFile(t, t.TempDir(), "roads", style.SLDCodec{})
	_, err = run(t, "--data", data, "put", "../roads", src)
	if !errors.Is(err, apperrors.ErrInvalid) {
		t.Errorf("put invalid type name = %v, want ErrInvalid", err)
	}
}

func TestGet_OutputFile(t *testing.T) {
	data := t.TempDir()
	src := writeStyleFile(t, t.TempDir(), "roads", style.SLDCodec{})
	if _, err := run(t, "--data", data, "put", "roads", src); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "out.sld")
	if _, err := run(t, "--data", data, "get", "roads", "-o", dst); err != nil {
		t.Fatalf("get -o: %v", err)
	}
	raw, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := (style.SLDCodec{}).Decode(raw); err != nil {
		t.Errorf("output file does not decode: %v", err)
	}
}

func TestSeed(t *testing.T) {
	data := t.TempDir()
	seedDir := t.TempDir()
	writeStyleFile(t, seedDir, "roads", style.SLDCodec{})
	writeStyleFile(t, seedDir, "rivers", style.SLDCodec{})

	out, err := run(t, "--data", data, "seed", seedDir)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "seeded 2 of 2") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = run(t, "--data", data, "seed", seedDir)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if !strings.Contains(out, "seeded 0 of 2") {
		t.Errorf("second seed overwrote styles: %q", out)
	}
}

func TestUnsupportedBackend(t *testing.T) {
	for _, backend := range []string{"s3", "configmap", "bogus"} {
		if _, err := run(t, "--backend", backend, "ls"); err == nil {
			t.Errorf("backend %q: expected error", backend)
		}
	}
}

func TestArgsValidation(t *testing.T) {
	tests := [][]string{
		{"has"},
		{"get"},
		{"put", "roads"},
		{"rm", "a", "b"},
		{"ls", "extra"},
		{"seed"},
	}
	for _, args := range tests {
		if _, err := run(t, append([]string{"--data", t.TempDir()}, args...)...); err == nil {
			t.Errorf("%v: expected argument error", args)
		}
	}
}
