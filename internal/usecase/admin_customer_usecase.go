package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AdminCustomerUsecase struct {
	tx        repo.TransactionManager
	customers repo.CustomerRepository
}

func NewAdminCustomerUsecase(tx repo.TransactionManager, customers repo.CustomerRepository) *AdminCustomerUsecase {
	return &AdminCustomerUsecase{tx: tx, customers: customers}
}

type CustomerListOutput struct {
	Items []model.Customer `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func customerNotFound(id int64) error {
	return NewHTTPError(http.StatusNotFound, fmt.Sprintf("Customer with ID %d not found", id))
}

func (u *AdminCustomerUsecase) List(ctx context.Context, q repo.CustomerListQuery) (CustomerListOutput, error) {
	if q.Page < 1 {
		return CustomerListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if q.Limit < 1 || q.Limit > 100 {
		return CustomerListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	q.Q = strings.TrimSpace(q.Q)

	items, total, err := u.customers.List(ctx, q)
	if err != nil {
		return CustomerListOutput{}, internalError(err)
	}
	return CustomerListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (u *AdminCustomerUsecase) Get(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}
	c, err := u.customers.FindByID(ctx, customerID)
	if err != nil {
		return model.Customer{}, internalError(err)
	}
	if c == nil {
		return model.Customer{}, customerNotFound(customerID)
	}
	return *c, nil
}

type UpdateCustomerInput struct {
	FullName string
	Phone    *string
}

func (u *AdminCustomerUsecase) Update(ctx context.Context, customerID int64, in UpdateCustomerInput) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}
	name := strings.TrimSpace(in.FullName)
	if name == "" {
		return model.Customer{}, NewHTTPError(http.StatusBadRequest, "full_name required")
	}

	err := u.customers.UpdateProfile(ctx, customerID, name, in.Phone)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, customerNotFound(customerID)
	}
	if err != nil {
		return model.Customer{}, internalError(err)
	}
	return u.Get(ctx, customerID)
}

// 論理削除。token_versionも上がるので発行済みトークンは使えなくなる
func (u *AdminCustomerUsecase) Delete(ctx context.Context, actorID int64, customerID int64) error {
	if customerID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid customer id")
	}
	if actorID == customerID {
		return NewHTTPError(http.StatusBadRequest, "cannot delete your own account")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Customers().SoftDelete(ctx, customerID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return customerNotFound(customerID)
			}
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorCustomerID: actorID,
			Action:          model.AuditActionDeleteCustomer,
			ResourceType:    model.AuditResourceCustomer,
			ResourceID:      customerID,
			BeforeJSON:      `{"deleted":false}`,
			AfterJSON:       `{"deleted":true}`,
		})
	})
	return passOrInternal(err)
}
