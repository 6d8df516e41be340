package services

import (
	"context"
	"testing"

	"kitapkulubu.link/models"
	"kitapkulubu.link/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorCRUD(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewAuthorService()

	author := &models.Author{Name: "Sabahattin Ali"}
	require.NoError(t, svc.CreateAuthor(ctx, author))
	require.NotZero(t, author.ID)

	got, err := svc.GetAuthorByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sabahattin Ali", got.Name)

	got.Name = "Oğuz Atay"
	require.NoError(t, svc.UpdateAuthor(ctx, got))
	got, err = svc.GetAuthorByID(ctx, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oğuz Atay", got.Name)

	require.NoError(t, svc.DeleteAuthor(ctx, author.ID))
	_, err = svc.GetAuthorByID(ctx, author.ID)
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}

func TestAuthorCreateRejectsEmptyName(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthorService()

	err := svc.CreateAuthor(context.Background(), &models.Author{Name: "   "})
	assert.ErrorIs(t, err, ErrAuthorInvalidInput)
}

func TestAuthorListFiltersByName(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	svc := NewAuthorService()

	for _, name := range []string{"Yaşar Kemal", "Orhan Kemal", "Elif Şafak"} {
		require.NoError(t, svc.CreateAuthor(ctx, &models.Author{Name: name}))
	}

	params := queryparams.DefaultListParams("name")
	params.Name = "kemal"
	result, err := svc.GetAuthorsPaginated(ctx, params)
	require.NoError(t, err)
	assert.EqualValues(t, 2, result.Meta.TotalItems)

	params.Name = ""
	result, err = svc.GetAuthorsPaginated(ctx, params)
	require.NoError(t, err)
	assert.EqualValues(t, 3, result.Meta.TotalItems)
}

func TestBookCountForAuthor(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	authorSvc := NewAuthorService()
	bookSvc := NewBookService()

	author := &models.Author{Name: "İhsan Oktay Anar"}
	require.NoError(t, authorSvc.CreateAuthor(ctx, author))

	for _, title := range []string{"Puslu Kıtalar Atlası", "Kitab-ül Hiyel"} {
		require.NoError(t, bookSvc.CreateBook(ctx, &models.Book{Title: title, AuthorID: author.ID}))
	}

	count, err := bookSvc.GetCountForAuthor(ctx, author.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
