package service

import (
	"context"
	"errors"

	"devconnect/internal/models"
	"devconnect/internal/repository"
)

var ErrNotPostOwner = errors.New("нет прав на удаление этого поста")

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	GetPosts(ctx context.Context) ([]models.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
}

type postService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) PostService {
	return &postService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePost денормализует имя и аватар автора в сам пост,
// чтобы публичное чтение обходилось без join
func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	user, err := p.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: user.UserID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	return p.postRepo.GetByID(ctx, postID)
}

func (p *postService) GetPosts(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.GetAll(ctx)
}

func (p *postService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return ErrNotPostOwner
	}

	return p.postRepo.Delete(ctx, postID)
}
