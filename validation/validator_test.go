package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Decade  int    `query:"decade" validate:"omitempty,min=1870,max=2100,decade"`
	Country string `query:"withOriginCountry" validate:"omitempty,iso3166_1_alpha2"`
	Runtime int    `query:"withRuntimeGte" validate:"omitempty,min=1,max=300"`
	Note    string `validate:"omitempty,len=2"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		in         sample
		wantFields []string
		contains   string
	}{
		{
			name: "empty is valid",
			in:   sample{},
		},
		{
			name: "valid values",
			in:   sample{Decade: 1990, Country: "BR", Runtime: 120},
		},
		{
			name:       "decade not aligned",
			in:         sample{Decade: 1995},
			wantFields: []string{"decade"},
			contains:   "first year of a decade",
		},
		{
			name:       "country and runtime",
			in:         sample{Country: "Brazil", Runtime: 500},
			wantFields: []string{"withOriginCountry", "withRuntimeGte"},
			contains:   "at most 300",
		},
		{
			name:       "untagged field keeps its Go name",
			in:         sample{Note: "abc"},
			wantFields: []string{"Note"},
			contains:   "exactly 2 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.in)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var verr *Error
			require.ErrorAs(t, err, &verr)

			var fields []string
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestErrorWithoutFields(t *testing.T) {
	assert.Equal(t, "validation failed", (&Error{}).Error())
}

type nestedConfig struct {
	API struct {
		URL     string `mapstructure:"url" validate:"required,http_url"`
		Workers int    `mapstructure:"concurrency" validate:"min=1,max=32"`
	} `mapstructure:"api"`
	Listen string `mapstructure:"listen" validate:"omitempty,hostname_port"`
}

func TestStructNestedPaths(t *testing.T) {
	var cfg nestedConfig
	cfg.API.URL = "localhost"
	cfg.API.Workers = 0
	cfg.Listen = "nope"

	err := Struct(cfg)
	require.Error(t, err)

	var verr *Error
	require.ErrorAs(t, err, &verr)

	var fields []string
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"api.url", "api.concurrency", "listen"}, fields)
	assert.Contains(t, err.Error(), "api.url must be an absolute http(s) URL")
	assert.Contains(t, err.Error(), "api.concurrency must be at least 1")
	assert.Contains(t, err.Error(), "listen must be a host:port address")
}
