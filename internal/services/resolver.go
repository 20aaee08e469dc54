package services

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/sync/errgroup"

	"cert-system/internal/entities"
	"cert-system/internal/repositories"
	apperrors "cert-system/pkg/errors"
)

// References: связанные записи, на которые ссылается документ.
type References struct {
	Company  *entities.Company
	Customer *entities.Customer
	Project  *entities.Project
	Product  *entities.Product
}

type ReferenceIDs struct {
	CompanyID  string
	CustomerID string
	ProjectID  string
	ProductID  string
}

// ReferenceResolver загружает связанные записи параллельно.
// Документ строится только если найдены все.
type ReferenceResolver struct {
	companies repositories.DocumentRepositoryInterface[entities.Company]
	customers repositories.DocumentRepositoryInterface[entities.Customer]
	projects  repositories.DocumentRepositoryInterface[entities.Project]
	products  repositories.DocumentRepositoryInterface[entities.Product]
}

func NewReferenceResolver(store *repositories.Store) *ReferenceResolver {
	return &ReferenceResolver{
		companies: store.Companies,
		customers: store.Customers,
		projects:  store.Projects,
		products:  store.Products,
	}
}

func (r *ReferenceResolver) Resolve(ctx context.Context, ids ReferenceIDs) (*References, error) {
	refs := &References{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := r.companies.Find(gctx, ids.CompanyID)
		if err != nil {
			return referenceError("company_id", err)
		}
		refs.Company = c
		return nil
	})
	g.Go(func() error {
		c, err := r.customers.Find(gctx, ids.CustomerID)
		if err != nil {
			return referenceError("customer_id", err)
		}
		refs.Customer = c
		return nil
	})
	g.Go(func() error {
		p, err := r.projects.Find(gctx, ids.ProjectID)
		if err != nil {
			return referenceError("project_id", err)
		}
		refs.Project = p
		return nil
	})
	if ids.ProductID != "" {
		g.Go(func() error {
			p, err := r.products.Find(gctx, ids.ProductID)
			if err != nil {
				return referenceError("product_id", err)
			}
			refs.Product = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

// referenceError превращает отсутствие записи в ошибку по конкретному полю.
func referenceError(field string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewHttpError(http.StatusNotFound, "Связанная запись не найдена", err,
			map[string]string{field: "не найдено"})
	}
	return err
}
