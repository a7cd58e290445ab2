package analyses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSize(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{
			name: "return with addition",
			src:  "def f():\n    return 1 + 2\n",
			want: 4,
		},
		{
			name: "bare return",
			src:  "def f():\n    return\n",
			want: 1,
		},
		{
			name: "pass",
			src:  "def f():\n    pass\n",
			want: 1,
		},
		{
			name: "assignment",
			src:  "def f():\n    x = 1\n",
			want: 3,
		},
		{
			name: "sequence sums",
			src:  "def f():\n    x = 1\n    return x\n",
			want: 5,
		},
		{
			name: "if with else",
			src:  "def f(x):\n    if x:\n        return 1\n    else:\n        return 2\n",
			want: 6,
		},
		{
			name: "for loop",
			src:  "def f(xs):\n    for x in xs:\n        pass\n",
			want: 4,
		},
		{
			name: "call with arguments",
			src:  "def f(x):\n    return g(x, 1)\n",
			want: 5,
		},
		{
			name: "list comprehension",
			src:  "def f(xs):\n    return [x for x in xs if x]\n",
			want: 6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analyze(t, "size", tt.src))
		})
	}
}
