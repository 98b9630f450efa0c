package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/ai-magazine/config"
)

func TestRewriteCmdRejectsBadID(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "非数字", args: []string{"abc"}, want: "ID không hợp lệ"},
		{name: "零", args: []string{"0"}, want: "ID không hợp lệ"},
		{name: "缺少参数", args: []string{}, want: "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := rewriteCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSeedAdminCmdValidatesInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "邮箱格式错误", args: []string{"--email", "not-an-email", "--password", "password123"}},
		{name: "密码太短", args: []string{"--email", "admin@example.com", "--password", "short"}},
		{name: "缺少密码", args: []string{"--email", "admin@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := seedAdminCmd()
			cmd.SetArgs(tt.args)
			cmd.SetOut(io.Discard)
			cmd.SetErr(io.Discard)

			assert.Error(t, cmd.Execute())
		})
	}
}

func TestConfigGetCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "server:\n  port: 9100\njwt:\n  secret: s3cret\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	require.NoError(t, config.Load(path))

	tests := []struct {
		name    string
		key     string
		want    string
		wantErr string
	}{
		{name: "普通值", key: "server.port", want: "9100\n"},
		{name: "敏感值打码", key: "jwt.secret", want: "******\n"},
		{name: "未设置", key: "server.missing", wantErr: "chưa được thiết lập"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := configGetCmd()
			cmd.SetArgs([]string{tt.key})
			cmd.SetOut(&out)
			cmd.SetErr(io.Discard)

			err := cmd.Execute()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
