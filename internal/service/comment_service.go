// Package service contains the application's business logic.
package service

import (
	"context"
	"log/slog"

	"tastestack/internal/models"
	"tastestack/internal/observability"
	"tastestack/internal/repository"
)

const maxCommentLen = 10000

// CommentService handles comment creation, editing and moderation.
type CommentService struct {
	commentRepo repository.CommentRepository
	recipeRepo  repository.RecipeRepository
	isStaff     func(ctx context.Context, userID uint) (bool, error)
}

type CreateCommentInput struct {
	UserID   uint
	RecipeID uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	recipeRepo repository.RecipeRepository,
	isStaff func(ctx context.Context, userID uint) (bool, error),
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
		isStaff:     isStaff,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.recipeRepo.GetByID(ctx, in.RecipeID); err != nil {
		return nil, err
	}

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.UserID,
		RecipeID: in.RecipeID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.ContentPreview = models.PreviewContent(comment.Content)
	return comment, nil
}

// ListComments returns a recipe's comments. Hidden comments are only
// included for staff viewers.
func (s *CommentService) ListComments(ctx context.Context, recipeID uint, viewerID uint) ([]*models.Comment, error) {
	includeHidden := false
	if viewerID != 0 && s.isStaff != nil {
		staff, err := s.isStaff(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		includeHidden = staff
	}
	return s.commentRepo.ListByRecipe(ctx, recipeID, includeHidden)
}

func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, comment, in.UserID); err != nil {
		return nil, err
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	comment.ContentPreview = models.PreviewContent(comment.Content)
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, comment, in.UserID); err != nil {
		return err
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}

// HideComments marks every comment in the selection as hidden. An empty
// selection changes nothing and is not an error.
func (s *CommentService) HideComments(ctx context.Context, ids []uint) (int64, error) {
	return s.setHidden(ctx, ids, true, "hide")
}

// ShowComments clears the hidden flag on every comment in the selection.
func (s *CommentService) ShowComments(ctx context.Context, ids []uint) (int64, error) {
	return s.setHidden(ctx, ids, false, "show")
}

func (s *CommentService) setHidden(ctx context.Context, ids []uint, hidden bool, action string) (int64, error) {
	affected, err := s.commentRepo.SetHidden(ctx, ids, hidden)
	if err != nil {
		return 0, err
	}
	observability.ModerationActions.WithLabelValues(action).Inc()
	slog.InfoContext(ctx, "bulk comment moderation",
		slog.String("action", action),
		slog.Int("selected", len(ids)),
		slog.Int64("updated", affected),
	)
	return affected, nil
}

// authorize permits the comment author or a staff user.
func (s *CommentService) authorize(ctx context.Context, comment *models.Comment, userID uint) error {
	if comment.UserID == userID {
		return nil
	}
	if s.isStaff != nil {
		staff, err := s.isStaff(ctx, userID)
		if err != nil {
			return err
		}
		if staff {
			return nil
		}
	}
	return models.NewUnauthorizedError("Not allowed to modify this comment")
}
