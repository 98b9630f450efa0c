package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Test", "test"},
		{"Đường sắt tốc độ cao Bắc - Nam", "duong-sat-toc-do-cao-bac-nam"},
		{"  Giá vàng hôm nay 19/10!  ", "gia-vang-hom-nay-19-10"},
		{"Nghệ An: mưa lũ", "nghe-an-mua-lu"},
		{"***", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Make(tt.in), tt.in)
	}
}

func TestMakeTruncates(t *testing.T) {
	got := Make(strings.Repeat("ab ", 200))
	assert.LessOrEqual(t, len(got), maxLen)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "tin-moi", WithSuffix("tin-moi", 1))
	assert.Equal(t, "tin-moi-2", WithSuffix("tin-moi", 2))
	assert.Equal(t, "tin-moi-13", WithSuffix("tin-moi", 13))
}
