package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCommentFixture() (*TxManagerMock, *CommentRepoMock, *usecase.CommentUsecase) {
	comments := &CommentRepoMock{}
	tx := &TxManagerMock{Repos: &TxReposMock{comments: comments}}
	return tx, comments, usecase.NewCommentUsecase(tx, comments)
}

func TestAddComment_Eligible(t *testing.T) {
	tx, comments, uc := newCommentFixture()
	ctx := context.Background()

	tx.On("WithinTx", mock.Anything).Once()
	comments.On("CanComment", ctx, int64(1), int64(5), int64(9)).Return(true, nil).Once()
	comments.On("Create", ctx, model.Comment{
		CustomerID: 1,
		ProductID:  5,
		OrderID:    9,
		Content:    "Great",
		Rating:     intPtr(5),
	}).Return(model.Comment{ID: 77, CustomerID: 1, ProductID: 5, OrderID: 9, Content: "Great", Rating: intPtr(5)}, nil).Once()

	c, err := uc.AddComment(ctx, 1, usecase.AddCommentInput{
		ProductID: 5,
		OrderID:   9,
		Content:   "Great",
		Rating:    intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), c.ID)
	assert.Equal(t, int64(1), c.CustomerID)
	assert.Equal(t, int64(5), c.ProductID)
	assert.Equal(t, int64(9), c.OrderID)
	comments.AssertExpectations(t)
}

func TestAddComment_NotEligible(t *testing.T) {
	tx, comments, uc := newCommentFixture()
	ctx := context.Background()

	tx.On("WithinTx", mock.Anything).Once()
	comments.On("CanComment", ctx, int64(2), int64(5), int64(9)).Return(false, nil).Once()

	_, err := uc.AddComment(ctx, 2, usecase.AddCommentInput{ProductID: 5, OrderID: 9, Content: "Great", Rating: intPtr(5)})
	assert.ErrorIs(t, err, usecase.ErrNotEligible)
	assertHTTPError(t, err, http.StatusBadRequest, "You can only comment after receiving this product.")
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddComment_Duplicate(t *testing.T) {
	tx, comments, uc := newCommentFixture()
	ctx := context.Background()

	tx.On("WithinTx", mock.Anything).Once()
	comments.On("CanComment", ctx, int64(1), int64(5), int64(9)).Return(true, nil).Once()
	comments.On("Create", ctx, mock.Anything).Return(model.Comment{}, repo.ErrDuplicate).Once()

	_, err := uc.AddComment(ctx, 1, usecase.AddCommentInput{ProductID: 5, OrderID: 9, Content: "again"})
	assert.ErrorIs(t, err, usecase.ErrAlreadyCommented)
	assertHTTPError(t, err, http.StatusBadRequest, "already commented")
}

func TestAddComment_EligibilityQueryFails(t *testing.T) {
	tx, comments, uc := newCommentFixture()
	ctx := context.Background()

	tx.On("WithinTx", mock.Anything).Once()
	comments.On("CanComment", ctx, int64(1), int64(5), int64(9)).Return(false, errors.New("timeout")).Once()

	_, err := uc.AddComment(ctx, 1, usecase.AddCommentInput{ProductID: 5, OrderID: 9, Content: "x"})
	assertHTTPError(t, err, http.StatusInternalServerError, "internal error")
}

func TestAddComment_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   usecase.AddCommentInput
		msg  string
	}{
		{"missing ids", usecase.AddCommentInput{Content: "x"}, "product_id and order_id"},
		{"blank content", usecase.AddCommentInput{ProductID: 1, OrderID: 1, Content: "  "}, "content required"},
		{"content too long", usecase.AddCommentInput{ProductID: 1, OrderID: 1, Content: strings.Repeat("あ", 501)}, "too long"},
		{"rating zero", usecase.AddCommentInput{ProductID: 1, OrderID: 1, Content: "x", Rating: intPtr(0)}, "rating"},
		{"rating six", usecase.AddCommentInput{ProductID: 1, OrderID: 1, Content: "x", Rating: intPtr(6)}, "rating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, _, uc := newCommentFixture()
			_, err := uc.AddComment(context.Background(), 1, tt.in)
			assertHTTPError(t, err, http.StatusBadRequest, tt.msg)
			tx.AssertNotCalled(t, "WithinTx", mock.Anything)
		})
	}
}

func TestListProductComments(t *testing.T) {
	_, comments, uc := newCommentFixture()
	ctx := context.Background()

	comments.On("ListByProductID", ctx, int64(5), 20).Return([]model.Comment{{ID: 1}, {ID: 2}}, nil).Once()

	out, err := uc.ListProductComments(ctx, 5, 20)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = uc.ListProductComments(ctx, 0, 20)
	assertHTTPError(t, err, http.StatusBadRequest, "invalid product id")
}
