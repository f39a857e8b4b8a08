package product

import (
	"context"
	"errors"
	"testing"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[uint64]domain.Product
	deleted  []uint64
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[uint64]domain.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = uint64(len(f.products) + 1)
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) FindByOwner(ctx context.Context, ownerID uint) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindIDsByOwner(ctx context.Context, ownerID uint) ([]uint64, error) {
	var ids []uint64
	for _, p := range f.products {
		if p.OwnerID == ownerID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uint64) error {
	delete(f.products, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func TestCreateProductValidation(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &domain.Product{OwnerID: 1, Price: 10})
	assert.ErrorContains(t, err, "name is required")

	_, err = svc.CreateProduct(ctx, &domain.Product{Name: "Lamp", Price: 10})
	assert.ErrorContains(t, err, "owner is required")

	_, err = svc.CreateProduct(ctx, &domain.Product{Name: "Lamp", OwnerID: 1, Price: 0})
	assert.ErrorContains(t, err, "price")

	_, err = svc.CreateProduct(ctx, &domain.Product{Name: "Lamp", OwnerID: 1, Price: 10, Stock: -1})
	assert.ErrorContains(t, err, "stock")

	created, err := svc.CreateProduct(ctx, &domain.Product{Name: "Lamp", OwnerID: 1, Price: 10, Stock: 3})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestUpdateProductOwnership(t *testing.T) {
	repo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Lamp", Price: 40, Stock: 5},
	)
	svc := NewProductService(repo)
	ctx := context.Background()

	// Another vendor cannot edit.
	_, err := svc.UpdateProduct(ctx, &domain.Product{ID: 1, Name: "Hijacked", Price: 1, Stock: 1}, 20, domain.RoleVendor)
	assert.ErrorContains(t, err, "forbidden")
	assert.Equal(t, "Lamp", repo.products[1].Name)

	// The owner can.
	updated, err := svc.UpdateProduct(ctx, &domain.Product{ID: 1, Name: "Brass Lamp", Price: 45, Stock: 5}, 10, domain.RoleVendor)
	require.NoError(t, err)
	assert.Equal(t, "Brass Lamp", updated.Name)

	// So can an admin.
	_, err = svc.UpdateProduct(ctx, &domain.Product{ID: 1, Name: "Adjusted", Price: 42, Stock: 5}, 99, domain.RoleAdmin)
	assert.NoError(t, err)
}

func TestUpdateProductKeepsOwner(t *testing.T) {
	repo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Lamp", Price: 40, Stock: 5},
	)
	svc := NewProductService(repo)

	updated, err := svc.UpdateProduct(context.Background(), &domain.Product{
		ID:      1,
		OwnerID: 77, // must be ignored
		Name:    "Lamp",
		Price:   40,
		Stock:   5,
	}, 10, domain.RoleVendor)
	require.NoError(t, err)

	assert.Equal(t, uint(10), updated.OwnerID)
}

func TestDeleteProductOwnership(t *testing.T) {
	repo := newFakeProductRepo(
		domain.Product{ID: 1, OwnerID: 10, Name: "Lamp", Price: 40},
	)
	svc := NewProductService(repo)
	ctx := context.Background()

	err := svc.DeleteProduct(ctx, 1, 20, domain.RoleVendor)
	assert.ErrorContains(t, err, "forbidden")
	assert.Empty(t, repo.deleted)

	err = svc.DeleteProduct(ctx, 1, 10, domain.RoleVendor)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, repo.deleted)
}

func TestDeleteProductNotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	err := svc.DeleteProduct(context.Background(), 42, 1, domain.RoleAdmin)
	assert.ErrorContains(t, err, "not found")
}
