// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"rivaas.dev/minihttp/config/codec"
)

type FileSourceTestSuite struct {
	suite.Suite
	dir string
}

func TestFileSourceTestSuite(t *testing.T) {
	suite.Run(t, new(FileSourceTestSuite))
}

func (s *FileSourceTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *FileSourceTestSuite) write(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (s *FileSourceTestSuite) TestLoad_YAMLFile() {
	path := s.write("minihttp.yaml", "port: 8080\n")

	conf, err := NewFile(path, codec.YAMLCodec{}).Load(context.Background())
	s.Require().NoError(err)
	s.EqualValues(8080, conf["port"])
}

func (s *FileSourceTestSuite) TestLoad_FileRereadEachTime() {
	path := s.write("c.json", `{"a":1}`)
	src := NewFile(path, codec.JSONCodec{})

	_, err := src.Load(context.Background())
	s.Require().NoError(err)

	s.write("c.json", `{"a":2}`)
	conf, err := src.Load(context.Background())
	s.Require().NoError(err)
	s.EqualValues(2, conf["a"])
}

func (s *FileSourceTestSuite) TestLoad_Missing() {
	path := filepath.Join(s.dir, "absent.yaml")

	_, err := NewFile(path, codec.YAMLCodec{}).Load(context.Background())
	s.Require().ErrorIs(err, os.ErrNotExist)

	conf, err := NewOptionalFile(path, codec.YAMLCodec{}).Load(context.Background())
	s.Require().NoError(err)
	s.Empty(conf)
}

func (s *FileSourceTestSuite) TestLoad_DecodeError() {
	path := s.write("bad.json", "{")

	_, err := NewFile(path, codec.JSONCodec{}).Load(context.Background())
	s.Require().Error(err)
	s.Contains(err.Error(), "bad.json")
}

func TestContent_Load(t *testing.T) {
	t.Parallel()

	conf, err := NewContent([]byte("[log]\nlevel = \"warn\"\n"), codec.TOMLCodec{}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"level": "warn"}, conf["log"])
}

func TestEnvVar_Load(t *testing.T) {
	t.Parallel()

	environ := func() []string {
		return []string{
			"MINIHTTP_PORT=9100",
			"MINIHTTP_LOG_LEVEL=debug",
			"OTHER_PORT=1",
			"PATH=/usr/bin",
		}
	}

	conf, err := NewEnvVar("MINIHTTP_", environ).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"port": "9100",
		"log":  map[string]any{"level": "debug"},
	}, conf)
}

func TestOSEnvVar_Load(t *testing.T) {
	t.Setenv("SRCTEST_SHUTDOWN_TIMEOUT", "3s")

	conf, err := NewOSEnvVar("SRCTEST_").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"shutdown": map[string]any{"timeout": "3s"}}, conf)
}
