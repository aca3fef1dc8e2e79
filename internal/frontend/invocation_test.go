package frontend

import (
	"reflect"
	"testing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Invocation
	}{
		{
			name: "empty",
			args: nil,
			want: Invocation{},
		},
		{
			name: "std and target",
			args: []string{"-std=c++20", "--target=x86_64-unknown-linux-gnu"},
			want: Invocation{Std: "c++20", Triple: "x86_64-unknown-linux-gnu"},
		},
		{
			name: "separate target",
			args: []string{"-target", "aarch64-apple-darwin"},
			want: Invocation{Triple: "aarch64-apple-darwin"},
		},
		{
			name: "include dirs joined and separate",
			args: []string{"-Iinclude", "-I", "deps/include"},
			want: Invocation{IncludeDirs: []string{"include", "deps/include"}},
		},
		{
			name: "defines and undefines",
			args: []string{"-DNDEBUG", "-D", "VERSION=3", "-UDEBUG"},
			want: Invocation{Defines: []string{"NDEBUG", "VERSION=3"}, Undefines: []string{"DEBUG"}},
		},
		{
			name: "output and inputs",
			args: []string{"-o", "out.pch", "main.cpp", "extra.cpp"},
			want: Invocation{Output: "out.pch", Inputs: []string{"main.cpp", "extra.cpp"}},
		},
		{
			name: "tolerated feature and warning flags",
			args: []string{"-fsyntax-only", "-fno-exceptions", "-Wall", "main.cpp"},
			want: Invocation{Inputs: []string{"main.cpp"}},
		},
		{
			name: "unknown flags recorded",
			args: []string{"--frobnicate", "-Q", "main.cpp"},
			want: Invocation{Unknown: []string{"--frobnicate", "-Q"}, Inputs: []string{"main.cpp"}},
		},
		{
			name: "dangling value flag",
			args: []string{"main.cpp", "-o"},
			want: Invocation{Inputs: []string{"main.cpp"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseArgs(tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseArgs(%v)\n got %+v\nwant %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestNewTarget(t *testing.T) {
	tests := []struct {
		triple  string
		arch    string
		os      string
		wantErr bool
	}{
		{triple: "x86_64-unknown-linux-gnu", arch: "x86_64", os: "linux"},
		{triple: "aarch64-apple-darwin", arch: "aarch64", os: "darwin"},
		{triple: "x86_64-pc-windows-msvc", arch: "x86_64", os: "windows"},
		{triple: "riscv64-unknown-none", arch: "riscv64", os: "none"},
		{triple: "wasm32-unknown-unknown", arch: "wasm32", os: "unknown"},
		{triple: "vax-unknown-plan9", wantErr: true},
		{triple: "x86_64-unknown-plan9", wantErr: true},
		{triple: "x86_64", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NewTarget(tt.triple)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewTarget(%q): expected error", tt.triple)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewTarget(%q): %v", tt.triple, err)
			continue
		}
		if got.Arch != tt.arch || got.OS != tt.os {
			t.Errorf("NewTarget(%q) = %s/%s, want %s/%s", tt.triple, got.Arch, got.OS, tt.arch, tt.os)
		}
	}
}

func TestNewTargetHostFallback(t *testing.T) {
	got, err := NewTarget("")
	if err != nil {
		t.Fatalf("host fallback: %v", err)
	}
	if got.Triple == "" || got.Arch == "" || got.OS == "" {
		t.Errorf("host target not populated: %+v", got)
	}
}
