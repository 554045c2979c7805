package services

import (
	"context"

	"listener-api/models"
	"listener-api/repositories"
)

type BlogService interface {
	CreateBlog(ctx context.Context, req models.CreateBlogRequest) (*models.Blog, error)
	GetBlogs(ctx context.Context, skip, limit int) ([]models.Blog, error)
	GetActiveBlogs(ctx context.Context, skip, limit int) ([]models.Blog, error)
	GetBlog(ctx context.Context, id uint) (*models.Blog, error)
	UpdateBlog(ctx context.Context, id uint, req models.UpdateBlogRequest) (*models.Blog, error)
	DeleteBlog(ctx context.Context, id uint) error
}

type blogService struct {
	blogRepo repositories.BlogRepository
	tagRepo  repositories.TagRepository
}

func NewBlogService(blogRepo repositories.BlogRepository, tagRepo repositories.TagRepository) BlogService {
	return &blogService{blogRepo: blogRepo, tagRepo: tagRepo}
}

func (s *blogService) checkUnique(ctx context.Context, selfID uint, name, url *string) error {
	if name != nil {
		existing, err := s.blogRepo.GetByName(ctx, *name)
		if err == nil && existing.ID != selfID {
			return models.ErrorBadRequest{Message: "Blog with this name already exists"}
		}
		if err != nil && !isNotFound(err) {
			return err
		}
	}
	if url != nil {
		existing, err := s.blogRepo.GetByURL(ctx, *url)
		if err == nil && existing.ID != selfID {
			return models.ErrorBadRequest{Message: "Blog with this URL already exists"}
		}
		if err != nil && !isNotFound(err) {
			return err
		}
	}
	return nil
}

func (s *blogService) CreateBlog(ctx context.Context, req models.CreateBlogRequest) (*models.Blog, error) {
	if err := s.checkUnique(ctx, 0, &req.Name, &req.URL); err != nil {
		return nil, err
	}
	tags, err := loadTags(ctx, s.tagRepo, req.TagIDs)
	if err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Name:          req.Name,
		URL:           req.URL,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		RSSFeedURL:    req.RSSFeedURL,
		IsActive:      true,
		LastScrapedAt: req.LastScrapedAt,
		Tags:          tags,
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, uniqueErr(err, "Blog with this name or URL already exists")
	}

	// is_active defaults to true in the schema, so an explicit false has to
	// be written after the insert.
	if req.IsActive != nil && !*req.IsActive {
		blog.IsActive = false
		if err := s.blogRepo.Update(ctx, blog); err != nil {
			return nil, err
		}
	}
	return blog, nil
}

func (s *blogService) GetBlogs(ctx context.Context, skip, limit int) ([]models.Blog, error) {
	return s.blogRepo.GetMulti(ctx, skip, limit)
}

func (s *blogService) GetActiveBlogs(ctx context.Context, skip, limit int) ([]models.Blog, error) {
	return s.blogRepo.GetActive(ctx, skip, limit)
}

func (s *blogService) GetBlog(ctx context.Context, id uint) (*models.Blog, error) {
	blog, err := s.blogRepo.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "Blog")
	}
	return blog, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, id uint, req models.UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, blog.ID, req.Name, req.URL); err != nil {
		return nil, err
	}

	if req.Name != nil {
		blog.Name = *req.Name
	}
	if req.URL != nil {
		blog.URL = *req.URL
	}
	if req.Description != nil {
		blog.Description = req.Description
	}
	if req.ImageURL != nil {
		blog.ImageURL = req.ImageURL
	}
	if req.RSSFeedURL != nil {
		blog.RSSFeedURL = req.RSSFeedURL
	}
	if req.IsActive != nil {
		blog.IsActive = *req.IsActive
	}
	if req.LastScrapedAt != nil {
		blog.LastScrapedAt = req.LastScrapedAt
	}

	var tags *[]models.Tag
	if req.TagIDs != nil {
		loaded, err := loadTags(ctx, s.tagRepo, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		tags = &loaded
	}

	if err := s.blogRepo.UpdateWithTags(ctx, blog, tags); err != nil {
		return nil, uniqueErr(err, "Blog with this name or URL already exists")
	}
	return s.GetBlog(ctx, id)
}

func (s *blogService) DeleteBlog(ctx context.Context, id uint) error {
	if _, err := s.GetBlog(ctx, id); err != nil {
		return err
	}
	return s.blogRepo.Delete(ctx, id)
}
