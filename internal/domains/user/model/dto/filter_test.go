package dto_test

import (
	"net/url"
	"testing"

	"sportsassist/internal/domains/user/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestListFilter(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:     "no filters",
			query:    url.Values{},
			wantArgs: map[string]any{},
		},
		{
			name:      "email is normalized",
			query:     url.Values{"email": {" Coach@Example.com "}},
			wantWhere: "(users.email = :email)",
			wantArgs:  map[string]any{"email": "coach@example.com"},
		},
		{
			name:      "role and active",
			query:     url.Values{"role": {"staff"}, "active": {"false"}},
			wantWhere: "(users.role = :role AND users.active = :active_filter)",
			wantArgs:  map[string]any{"role": "staff", "active_filter": false},
		},
		{
			name:      "search matches name or email",
			query:     url.Values{"search": {"lee"}},
			wantWhere: "((LOWER(users.full_name) LIKE LOWER(:search_name) OR LOWER(users.email) LIKE LOWER(:search_email)))",
			wantArgs:  map[string]any{"search_name": "%lee%", "search_email": "%lee%"},
		},
		{
			name:     "unparseable active is ignored",
			query:    url.Values{"active": {"maybe"}},
			wantArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := dto.ListFilter(tt.query)

			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
