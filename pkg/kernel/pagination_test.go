package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationOptions_Normalize(t *testing.T) {
	assert.Equal(t, PaginationOptions{Page: 1, PageSize: DefaultPageSize}, PaginationOptions{}.Normalize())
	assert.Equal(t, PaginationOptions{Page: 2, PageSize: MaxPageSize}, PaginationOptions{Page: 2, PageSize: 500}.Normalize())
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Paginate(items, PaginationOptions{Page: 2, PageSize: 2})
	assert.Equal(t, []int{3, 4}, page.Items)
	assert.Equal(t, 5, page.Page.Total)
	assert.Equal(t, 3, page.Page.Pages)
	assert.False(t, page.Empty)

	beyond := Paginate(items, PaginationOptions{Page: 9, PageSize: 2})
	assert.True(t, beyond.Empty)
	assert.NotNil(t, beyond.Items)
}

func TestEmail(t *testing.T) {
	e := NewEmail("  Ada@Example.COM ")
	assert.Equal(t, Email("ada@example.com"), e)
	assert.True(t, e.IsValid())
	assert.False(t, NewEmail("not-an-email").IsValid())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleStudent.IsValid())
	assert.False(t, Role("owner").IsValid())
}
