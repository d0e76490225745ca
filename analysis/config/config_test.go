// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults failed: %v", err)
	}
	if cfg.LogLevel != int(InfoLevel) || !cfg.IncludeHoist {
		t.Errorf("unexpected defaults: %+v", cfg.Options)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "log-level: 4\ndot-out: out.dot\ninclude-hoist: false\nmax-label: 24\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("could not write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.LogLevel != 4 || cfg.DotOut != "out.dot" || cfg.IncludeHoist || cfg.MaxLabel != 24 {
		t.Errorf("unexpected options: %+v", cfg.Options)
	}
	if cfg.SourceFile() != path {
		t.Errorf("source file not recorded")
	}

	SetGlobalConfig(path)
	global, err := LoadGlobal()
	if err != nil || global.MaxLabel != 24 {
		t.Errorf("global load failed: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Errorf("missing files should fail to load")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("{ unclosed"), 0o600); err != nil {
		t.Fatalf("could not write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("malformed yaml should fail to load")
	}
}

func TestLogGroupLevels(t *testing.T) {
	cfg := NewDefault()
	cfg.LogLevel = int(WarnLevel)
	logger := NewLogGroup(cfg)
	var buf bytes.Buffer
	logger.SetAllOutput(&buf)
	logger.SetAllFlags(0)

	logger.Infof("hidden")
	logger.Debugf("hidden")
	logger.Tracef("hidden")
	if buf.Len() != 0 {
		t.Errorf("messages below the level should be suppressed: %q", buf.String())
	}
	logger.Warnf("shown %d", 1)
	logger.Errorf("shown %d", 2)
	if got := buf.String(); !bytes.Contains([]byte(got), []byte("shown 1")) || !bytes.Contains([]byte(got), []byte("shown 2")) {
		t.Errorf("warn and error messages should pass: %q", got)
	}
}
