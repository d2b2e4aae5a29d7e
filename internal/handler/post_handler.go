package handler

import (
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shashoo/internal/access"
	"shashoo/internal/middleware"
	"shashoo/internal/model"
	"shashoo/internal/repository"
	"shashoo/internal/storage"
	"shashoo/internal/youtube"
)

// MaxUploadSize caps one multipart request at 50 MB.
const MaxUploadSize = 50 << 20

type PostHandler struct {
	posts  repository.PostRepositoryInterface
	boards repository.BoardRepositoryInterface
	grants repository.BoardAccessRepositoryInterface
	store  storage.Store
}

func NewPostHandler(posts repository.PostRepositoryInterface, boards repository.BoardRepositoryInterface, grants repository.BoardAccessRepositoryInterface, store storage.Store) *PostHandler {
	return &PostHandler{
		posts:  posts,
		boards: boards,
		grants: grants,
		store:  store,
	}
}

type AttachmentResponse struct {
	ID           string `json:"id"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
}

type YoutubeEmbedResponse struct {
	ID           string `json:"id"`
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type PostResponse struct {
	ID            string                 `json:"id"`
	BoardID       string                 `json:"board_id"`
	AuthorID      string                 `json:"author_id"`
	AuthorName    string                 `json:"author_name"`
	AuthorEmail   string                 `json:"author_email"`
	Title         string                 `json:"title"`
	Content       string                 `json:"content"`
	ViewType      string                 `json:"view_type"`
	CreatedAt     string                 `json:"created_at"`
	UpdatedAt     string                 `json:"updated_at"`
	Attachments   []AttachmentResponse   `json:"attachments"`
	YoutubeEmbeds []YoutubeEmbedResponse `json:"youtube_embeds"`
}

func toPostResponse(post *model.Post) PostResponse {
	authorName := post.Author.Name
	if authorName == "" {
		authorName = post.Author.Email
	}

	attachments := make([]AttachmentResponse, len(post.Attachments))
	for i, a := range post.Attachments {
		attachments[i] = AttachmentResponse{
			ID:           a.ID.String(),
			OriginalName: a.OriginalName,
			MimeType:     a.MimeType,
			FileSize:     a.FileSize,
		}
	}
	embeds := make([]YoutubeEmbedResponse, len(post.YoutubeEmbeds))
	for i, e := range post.YoutubeEmbeds {
		embeds[i] = YoutubeEmbedResponse{
			ID:           e.ID.String(),
			VideoID:      e.VideoID,
			Title:        e.Title,
			ThumbnailURL: e.ThumbnailURL,
		}
	}

	return PostResponse{
		ID:            post.ID.String(),
		BoardID:       post.BoardID.String(),
		AuthorID:      post.AuthorID.String(),
		AuthorName:    authorName,
		AuthorEmail:   post.Author.Email,
		Title:         post.Title,
		Content:       post.Content,
		ViewType:      post.ViewType,
		CreatedAt:     post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     post.UpdatedAt.Format(time.RFC3339),
		Attachments:   attachments,
		YoutubeEmbeds: embeds,
	}
}

// buildEmbeds turns submitted URLs into embed rows. URLs without a
// recognizable video id are skipped silently; duplicate video ids collapse
// to one row per post.
func buildEmbeds(links []string) []model.YoutubeEmbed {
	seen := make(map[string]bool)
	var embeds []model.YoutubeEmbed
	for _, link := range links {
		videoID := youtube.ExtractVideoID(link)
		if videoID == "" || seen[videoID] {
			continue
		}
		seen[videoID] = true
		embeds = append(embeds, model.YoutubeEmbed{VideoID: videoID})
	}
	return embeds
}

// saveAttachments streams each uploaded file into the store and returns
// the attachment rows recording name, declared mime type and stored size.
func (h *PostHandler) saveAttachments(c *gin.Context, files []*multipart.FileHeader) ([]model.Attachment, error) {
	attachments := make([]model.Attachment, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		ref, size, err := h.store.Save(c.Request.Context(), f, fh.Filename)
		f.Close()
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, model.Attachment{
			OriginalName: fh.Filename,
			MimeType:     fh.Header.Get("Content-Type"),
			FileSize:     size,
			StorageRef:   ref,
		})
	}
	return attachments, nil
}

// visibleBoard loads the board and applies the visibility rules, writing
// the error response itself. Returns nil when the caller may not proceed.
func (h *PostHandler) visibleBoard(c *gin.Context, identity *access.Identity, boardID uuid.UUID) *model.Board {
	board, err := h.boards.GetByID(c.Request.Context(), boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve board"})
		return nil
	}
	if board == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Board not found"})
		return nil
	}

	hasGrant := false
	if !identity.IsAdmin() {
		hasGrant, err = h.grants.HasGrant(c.Request.Context(), board.ID, identity.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check board access"})
			return nil
		}
	}
	if !access.CanViewBoard(identity, *board, hasGrant) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this board"})
		return nil
	}
	return board
}

// ListByBoard returns the posts of a visible board, newest first. Board
// visibility is the unit of read access: whoever sees the board sees all
// of its posts. An optional ?view=card|list filter narrows by display mode.
func (h *PostHandler) ListByBoard(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board := h.visibleBoard(c, identity, boardID)
	if board == nil {
		return
	}

	viewType := c.Query("view")
	if viewType != "" && !model.ValidViewType(viewType) {
		viewType = ""
	}

	posts, err := h.posts.ListByBoard(c.Request.Context(), board.ID, viewType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	response := make([]PostResponse, len(posts))
	for i := range posts {
		response[i] = toPostResponse(&posts[i])
	}
	c.JSON(http.StatusOK, response)
}

// Create writes a post with its attachments and embeds as one logical
// operation. Sent as multipart/form-data: title, content, view_type fields,
// repeated youtube_links fields and attachment files.
func (h *PostHandler) Create(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board := h.visibleBoard(c, identity, boardID)
	if board == nil {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	viewType := c.PostForm("view_type")
	if viewType == "" {
		viewType = model.ViewTypeCard
	}
	if !model.ValidViewType(viewType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view_type"})
		return
	}

	attachments, err := h.saveAttachments(c, form.File["attachments"])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
		return
	}

	post := &model.Post{
		BoardID:       board.ID,
		AuthorID:      identity.ID,
		Title:         title,
		Content:       c.PostForm("content"),
		ViewType:      viewType,
		Attachments:   attachments,
		YoutubeEmbeds: buildEmbeds(form.Value["youtube_links"]),
	}

	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	created, err := h.posts.GetByID(c.Request.Context(), post.ID)
	if err != nil || created == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}
	c.JSON(http.StatusCreated, toPostResponse(created))
}

func (h *PostHandler) GetByID(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if h.visibleBoard(c, identity, post.BoardID) == nil {
		return
	}
	c.JSON(http.StatusOK, toPostResponse(post))
}

// Update edits a post. Only the author or an admin may. New attachments
// are appended, never replacing existing ones; submitting youtube_links
// swaps the embed list wholesale.
func (h *PostHandler) Update(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !access.CanModifyPost(identity, *post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this post"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		post.Title = title
	}
	if content := c.PostForm("content"); content != "" {
		post.Content = content
	}
	if viewType := c.PostForm("view_type"); viewType != "" {
		if !model.ValidViewType(viewType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view_type"})
			return
		}
		post.ViewType = viewType
	}

	newAttachments, err := h.saveAttachments(c, form.File["attachments"])
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store attachment"})
		return
	}

	links := form.Value["youtube_links"]
	embeds := buildEmbeds(links)

	if err := h.posts.Update(c.Request.Context(), post, newAttachments, embeds, len(links) > 0); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	updated, err := h.posts.GetByID(c.Request.Context(), post.ID)
	if err != nil || updated == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}
	c.JSON(http.StatusOK, toPostResponse(updated))
}

// Delete removes a post and its attachment and embed rows. Author or
// admin only.
func (h *PostHandler) Delete(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID format"})
		return
	}

	post, err := h.posts.GetByID(c.Request.Context(), postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if !access.CanModifyPost(identity, *post) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this post"})
		return
	}

	if err := h.posts.Delete(c.Request.Context(), postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadAttachment streams stored bytes back to a caller who can view
// the attachment's board.
func (h *PostHandler) DownloadAttachment(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	attachmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment ID format"})
		return
	}

	attachment, err := h.posts.GetAttachment(c.Request.Context(), attachmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve attachment"})
		return
	}
	if attachment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}

	if h.visibleBoard(c, identity, attachment.Post.BoardID) == nil {
		return
	}

	reader, err := h.store.Open(c.Request.Context(), attachment.StorageRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open attachment"})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.OriginalName+`"`)
	contentType := attachment.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, attachment.FileSize, contentType, reader, nil)
}
