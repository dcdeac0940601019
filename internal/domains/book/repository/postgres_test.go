package repository

import (
	"context"
	"errors"
	"testing"

	"bookstore-jsonb/internal/domains/book/model"
	"bookstore-jsonb/pkg/jsondoc"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jsonDoc so khớp tham số document theo nội dung JSON, không theo byte
type jsonDoc string

func (d jsonDoc) Match(v any) bool {
	raw, ok := v.([]byte)
	if !ok {
		return false
	}
	var want, got any
	if json.Unmarshal([]byte(d), &want) != nil || json.Unmarshal(raw, &got) != nil {
		return false
	}
	return assert.ObjectsAreEqual(want, got)
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func newTestRepo(t *testing.T) (RepositoryInterface, pgxmock.PgxPoolIface) {
	t.Helper()
	mock := newMockPool(t)
	return NewPostgresRepository(mock, jsondoc.New[model.Book](jsondoc.Options{})), mock
}

const ethanFromeID = "6c2a0c1e-3f43-4f5a-9d87-1e0b2a8a8f10"

const ethanFrome = `{
	"id": "6c2a0c1e-3f43-4f5a-9d87-1e0b2a8a8f10",
	"title": "Ethan Frome",
	"genre": "DRAMA",
	"publisher": "Scribner",
	"star": 3,
	"author": {"firstName": "Edith", "lastName": "Wharton"}
}`

func ethanFromeBook() *model.Book {
	return &model.Book{
		ID:        uuid.MustParse(ethanFromeID),
		Title:     "Ethan Frome",
		Genre:     model.GenreDrama,
		Publisher: "Scribner",
		Star:      3,
		Author:    &model.Author{FirstName: "Edith", LastName: "Wharton"},
	}
}

func beginTx(t *testing.T, mock pgxmock.PgxPoolIface) pgx.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestCreateWithTx(t *testing.T) {
	repo, mock := newTestRepo(t)
	ctx := context.Background()
	book := ethanFromeBook()
	book.Match = "title: Ethan Frome"

	tx := beginTx(t, mock)
	mock.ExpectQuery(insertBookQuery).
		WithArgs(book.ID, jsonDoc(ethanFrome)).
		WillReturnRows(pgxmock.NewRows([]string{"book"}).AddRow([]byte(ethanFrome)))

	created, err := repo.CreateWithTx(ctx, tx, book)
	require.NoError(t, err)
	assert.Equal(t, ethanFromeBook(), created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTx_AssignsID(t *testing.T) {
	repo, mock := newTestRepo(t)
	book := ethanFromeBook()
	book.ID = uuid.Nil

	tx := beginTx(t, mock)
	mock.ExpectQuery(insertBookQuery).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"book"}).AddRow([]byte(ethanFrome)))

	created, err := repo.CreateWithTx(context.Background(), tx, book)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithTx_StorageError(t *testing.T) {
	repo, mock := newTestRepo(t)
	book := ethanFromeBook()

	tx := beginTx(t, mock)
	mock.ExpectQuery(insertBookQuery).
		WithArgs(book.ID, pgxmock.AnyArg()).
		WillReturnError(errors.New("duplicate key value violates unique constraint"))

	_, err := repo.CreateWithTx(context.Background(), tx, book)
	require.Error(t, err)
	assert.True(t, model.IsStorageError(err))
}

func TestGetByID(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.MustParse(ethanFromeID)

	mock.ExpectQuery(getBookQuery).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"book"}).AddRow([]byte(ethanFrome)))

	got, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, ethanFromeBook(), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery(getBookQuery).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"book"}))

	_, err := repo.GetByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, model.IsNotFoundError(err))
	assert.Equal(t, model.CodeBookNotFound, model.GetErrorCode(err))
}

func TestGetByID_CorruptDocument(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectQuery(getBookQuery).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"book"}).AddRow([]byte(`{"id":"x","star":"five"}`)))

	_, err := repo.GetByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, model.IsCodecError(err), "document hỏng không được báo là not found")
	var codecErr *jsondoc.Error
	assert.ErrorAs(t, err, &codecErr)
}

func TestGetByIDForUpdate(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.MustParse(ethanFromeID)

	mock.ExpectBegin()
	mock.ExpectQuery(getBookForUpdateQuery).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"book"}).AddRow([]byte(ethanFrome)))
	mock.ExpectRollback()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	got, err := repo.GetByIDForUpdate(context.Background(), tx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ethan Frome", got.Title)

	require.NoError(t, tx.Rollback(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_All(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(listBooksQuery).
		WillReturnRows(pgxmock.NewRows([]string{"book"}).
			AddRow([]byte(ethanFrome)).
			AddRow([]byte(`{"id":"0b7c8f3e-8a3f-4c56-bb8e-4c3f5b7d9e21","title":"The Age of Innocence"}`)))

	books, err := repo.List(context.Background(), "   ")
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Ethan Frome", books[0].Title)
	assert.Equal(t, "The Age of Innocence", books[1].Title)
	assert.Empty(t, books[0].Match)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_EmptyTable(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(listBooksQuery).
		WillReturnRows(pgxmock.NewRows([]string{"book"}))

	books, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestList_DelegatesToSearch(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(searchBooksQuery).
		WithArgs("wharton").
		WillReturnRows(pgxmock.NewRows([]string{"book"}).
			AddRow([]byte(`{"id":"` + ethanFromeID + `","title":"Ethan Frome","match":"author.lastName: Wharton"}`)))

	books, err := repo.List(context.Background(), "wharton")
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "author.lastName: Wharton", books[0].Match)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearch_CodecErrorStopsIteration(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(searchBooksQuery).
		WithArgs("frome").
		WillReturnRows(pgxmock.NewRows([]string{"book"}).
			AddRow([]byte(ethanFrome)).
			AddRow([]byte(`not json`)))

	_, err := repo.Search(context.Background(), "frome")
	require.Error(t, err)
	assert.True(t, model.IsCodecError(err))
}

func TestSearch_QueryError(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(searchBooksQuery).
		WithArgs("frome").
		WillReturnError(errors.New("function search_books(unknown) does not exist"))

	_, err := repo.Search(context.Background(), "frome")
	require.Error(t, err)
	assert.True(t, model.IsStorageError(err))
}

func TestUpdateWithTx(t *testing.T) {
	repo, mock := newTestRepo(t)
	book := ethanFromeBook()
	book.Star = 4

	stored := `{"id":"` + ethanFromeID + `","title":"Ethan Frome","genre":"DRAMA","publisher":"Scribner","star":4,"author":{"firstName":"Edith","lastName":"Wharton"}}`

	mock.ExpectBegin()
	mock.ExpectQuery(updateBookQuery).
		WithArgs(book.ID, jsonDoc(stored)).
		WillReturnRows(pgxmock.NewRows([]string{"book"}).AddRow([]byte(stored)))
	mock.ExpectCommit()

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	updated, err := repo.UpdateWithTx(context.Background(), tx, book)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Star)

	require.NoError(t, tx.Commit(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateWithTx_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	book := ethanFromeBook()

	mock.ExpectBegin()
	mock.ExpectQuery(updateBookQuery).
		WithArgs(book.ID, pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	_, err = repo.UpdateWithTx(context.Background(), tx, book)
	require.Error(t, err)
	assert.True(t, model.IsNotFoundError(err))
}

func TestDelete(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.MustParse(ethanFromeID)

	mock.ExpectExec(deleteBookQuery).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)
	id := uuid.New()

	mock.ExpectExec(deleteBookQuery).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)
	require.Error(t, err)
	assert.True(t, model.IsNotFoundError(err))
}

func TestDeleteAll(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(deleteAllBooksQuery).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	count, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDistinctValues(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(distinctValuesQuery).
		WithArgs(FieldPublisher, "scrib").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).
			AddRow("Scribner").
			AddRow("Scribner Classics"))

	values, err := repo.DistinctValues(context.Background(), FieldPublisher, "scrib")
	require.NoError(t, err)
	assert.Equal(t, []string{"Scribner", "Scribner Classics"}, values)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDistinctValues_EscapesWildcards(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(distinctValuesQuery).
		WithArgs(FieldPublisher, `100\%\_\\`).
		WillReturnRows(pgxmock.NewRows([]string{"value"}))

	values, err := repo.DistinctValues(context.Background(), FieldPublisher, `100%_\`)
	require.NoError(t, err)
	assert.Empty(t, values)
	assert.NoError(t, mock.ExpectationsWereMet())
}
