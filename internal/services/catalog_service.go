package services

import (
	"stripledger/internal/domain"
	"stripledger/internal/repos"

	"github.com/google/uuid"
)

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

// CategoryNode is a top-level category with its subcategories.
type CategoryNode struct {
	domain.Category
	Children []domain.Category `json:"children"`
}

// CategoryTree groups active categories into parents with children.
func (s *CatalogService) CategoryTree() ([]CategoryNode, error) {
	cats, err := s.Cats.List()
	if err != nil {
		return nil, err
	}
	byParent := map[string][]domain.Category{}
	var roots []CategoryNode
	for _, c := range cats {
		if c.ParentID == nil {
			roots = append(roots, CategoryNode{Category: c})
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}
	for i := range roots {
		roots[i].Children = byParent[roots[i].ID]
		if roots[i].Children == nil {
			roots[i].Children = []domain.Category{}
		}
	}
	if roots == nil {
		roots = []CategoryNode{}
	}
	return roots, nil
}

func (s *CatalogService) CreateCategory(name string, parentID *string) (domain.Category, error) {
	c := domain.Category{ID: uuid.NewString(), Name: name, ParentID: parentID, Active: true}
	if err := s.Cats.Create(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(c domain.Category) error {
	return s.Cats.Update(c)
}

// DeactivateCategory refuses while active subcategories remain.
func (s *CatalogService) DeactivateCategory(id string) error {
	has, err := s.Cats.HasChildren(id)
	if err != nil {
		return err
	}
	if has {
		return ErrHasChildren
	}
	return s.Cats.Deactivate(id)
}

func (s *CatalogService) ListProducts(page, pageSize int) ([]domain.Product, error) {
	limit, offset := paging(page, pageSize)
	return s.Prods.List(limit, offset)
}

func (s *CatalogService) ListProductsByCategory(catID string, page, pageSize int) ([]domain.Product, error) {
	limit, offset := paging(page, pageSize)
	return s.Prods.ListByCategory(catID, limit, offset)
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) SearchProducts(q, category string, page, pageSize int) ([]domain.Product, error) {
	limit, offset := paging(page, pageSize)
	return s.Prods.Search(q, category, limit, offset)
}

func (s *CatalogService) CreateProduct(p domain.Product) (domain.Product, error) {
	p.ID = uuid.NewString()
	p.Active = true
	if err := s.Prods.Create(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(p domain.Product) error {
	return s.Prods.Update(p)
}

func (s *CatalogService) DeactivateProduct(id string) error {
	return s.Prods.Deactivate(id)
}

func (s *CatalogService) ReactivateProduct(id string) error {
	return s.Prods.Reactivate(id)
}

func paging(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 25
	}
	return pageSize, (page - 1) * pageSize
}
