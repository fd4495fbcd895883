package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archgen/archgen/internal/domain"
)

func TestParseMethodSignature(t *testing.T) {
	tests := []struct {
		sig  string
		want domain.AdapterMethod
	}{
		{
			sig:  "Mono<User> findById(String id)",
			want: domain.AdapterMethod{Name: "findById", ReturnType: "Mono<User>", Parameters: []domain.MethodParameter{{Name: "id", Type: "String"}}},
		},
		{
			sig:  "void clear()",
			want: domain.AdapterMethod{Name: "clear", ReturnType: "void"},
		},
		{
			sig: "  Map<String, User> index(Map<String, Long> ids, boolean strict) ",
			want: domain.AdapterMethod{Name: "index", ReturnType: "Map<String, User>", Parameters: []domain.MethodParameter{
				{Name: "ids", Type: "Map<String, Long>"},
				{Name: "strict", Type: "boolean"},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.sig, func(t *testing.T) {
			got, err := domain.ParseMethodSignature(tt.sig)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMethodSignature_Invalid(t *testing.T) {
	for _, sig := range []string{"findById", "findById(String id)", "Mono<User> find(String)", "User get(String id"} {
		_, err := domain.ParseMethodSignature(sig)
		assert.Error(t, err, sig)
	}
}

func TestParseMethodSignatures(t *testing.T) {
	methods, err := domain.ParseMethodSignatures([]string{"void a()", "int b(int x)"})
	require.NoError(t, err)
	assert.Len(t, methods, 2)

	_, err = domain.ParseMethodSignatures([]string{"void a()", "broken"})
	assert.Error(t, err)
}

func TestParseField(t *testing.T) {
	f, err := domain.ParseField("total : java.math.BigDecimal")
	require.NoError(t, err)
	assert.Equal(t, domain.EntityField{Name: "total", Type: "java.math.BigDecimal"}, f)

	for _, bad := range []string{"total", ":String", "total:"} {
		_, err := domain.ParseField(bad)
		assert.Error(t, err, bad)
	}
}
