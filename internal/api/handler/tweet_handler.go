package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/twittoo/twittoo-api/internal/api/metrics"
	"github.com/twittoo/twittoo-api/internal/core/domain"
	"github.com/twittoo/twittoo-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry tweet creation safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// TweetHandler handles HTTP requests for tweets and their engagement.
type TweetHandler struct {
	service ports.TweetService
}

func NewTweetHandler(service ports.TweetService) *TweetHandler {
	return &TweetHandler{service: service}
}

func tweetID(c echo.Context) (int64, error) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		return 0, domain.ErrTweetNotFound
	}
	return id, nil
}

// Owner resolves the author of the tweet addressed by the :id path param.
// It is the resolver for the ownership gate on update and delete.
func (h *TweetHandler) Owner(c echo.Context) (int64, bool, error) {
	id, ok := ParseID(c.Param("id"))
	if !ok {
		return 0, false, nil
	}
	return h.service.OwnerOf(c.Request().Context(), id)
}

// List returns every tweet, newest first. Authentication is optional and
// only drives the userLiked and userRetweeted flags.
//
// @Summary      List tweets
// @Tags         tweets
// @Produce      json
// @Success      200  {array}   tweetResponse
// @Router       /tweets [get]
func (h *TweetHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context(), viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetResponses(views))
}

// Get returns a tweet with its replies. Authentication is optional.
//
// @Summary      Get a tweet
// @Tags         tweets
// @Produce      json
// @Param        id   path      int  true  "Tweet ID"
// @Success      200  {object}  tweetDetailResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tweets/{id} [get]
func (h *TweetHandler) Get(c echo.Context) error {
	id, err := tweetID(c)
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.Request().Context(), id, viewerID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetDetailResponse(view))
}

// Create publishes a tweet. The body is either JSON {"content": ...} or a
// multipart form with a content field and up to four images files.
//
// @Summary      Create a tweet
// @Tags         tweets
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string          false  "Client retry key"
// @Param        body             body      contentRequest  true   "Tweet content"
// @Success      201              {object}  tweetResponse
// @Success      200              {object}  tweetResponse  "Replayed from Idempotency-Key"
// @Failure      400              {object}  ErrorResponse
// @Failure      401              {object}  ErrorResponse
// @Failure      409              {object}  ErrorResponse
// @Router       /tweets [post]
func (h *TweetHandler) Create(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	input := ports.CreateTweetInput{
		AuthorID:       who.ID,
		Username:       who.Username,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey)),
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return errInvalidPayload()
		}
		if vals := form.Value["content"]; len(vals) > 0 {
			input.Content = vals[0]
		}
		files := form.File["images"]
		if len(files) > domain.MaxTweetImages {
			return domain.ErrTooManyImages
		}
		images, closeAll, err := openImages(files)
		defer closeAll()
		if err != nil {
			return err
		}
		input.Images = images
	} else {
		var req contentRequest
		if err := c.Bind(&req); err != nil {
			return errInvalidPayload()
		}
		input.Content = req.Content
	}

	res, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	if res.Replayed {
		metrics.IdempotentReplaysTotal.Inc()
		return c.JSON(http.StatusOK, toTweetResponse(res.Tweet))
	}
	media := "text"
	if len(input.Images) > 0 {
		media = "images"
	}
	metrics.TweetsCreatedTotal.WithLabelValues(media).Inc()
	return c.JSON(http.StatusCreated, toTweetResponse(res.Tweet))
}

// openImages opens every uploaded file. The returned func closes whatever
// was opened and is safe to call on error.
func openImages(files []*multipart.FileHeader) ([]ports.ImageInput, func(), error) {
	var opened []io.Closer
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	images := make([]ports.ImageInput, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, closeAll, errInvalidPayload()
		}
		opened = append(opened, f)
		images = append(images, ports.ImageInput{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		})
	}
	return images, closeAll, nil
}

// Update replaces the content of a tweet. Allowed for the author, editors
// and admins.
//
// @Summary      Update a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Tweet ID"
// @Param        body  body      contentRequest  true  "New content"
// @Success      200   {object}  tweetResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /tweets/{id} [put]
func (h *TweetHandler) Update(c echo.Context) error {
	id, err := tweetID(c)
	if err != nil {
		return err
	}
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	view, err := h.service.Update(c.Request().Context(), id, viewerID(c), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTweetResponse(*view))
}

// Delete removes a tweet together with its likes, retweets and replies.
//
// @Summary      Delete a tweet
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tweet ID"
// @Success      200  {object}  deleteTweetResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tweets/{id} [delete]
func (h *TweetHandler) Delete(c echo.Context) error {
	id, err := tweetID(c)
	if err != nil {
		return err
	}
	tweet, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteTweetResponse{
		Message: "tweet deleted successfully",
		Tweet:   toStoredTweetResponse(tweet),
	})
}

func (h *TweetHandler) toggle(c echo.Context, kind domain.EngagementKind) (*ports.ToggleResult, error) {
	who, err := ctxIdentity(c)
	if err != nil {
		return nil, err
	}
	id, err := tweetID(c)
	if err != nil {
		return nil, err
	}
	res, err := h.service.Toggle(c.Request().Context(), kind, id, who.ID)
	if err != nil {
		return nil, err
	}
	metrics.TogglesTotal.WithLabelValues(string(kind), metrics.ToggleState(res.Active)).Inc()
	return res, nil
}

// Like toggles the caller's like on a tweet.
//
// @Summary      Toggle like
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tweet ID"
// @Success      200  {object}  likeResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tweets/{id}/like [post]
func (h *TweetHandler) Like(c echo.Context) error {
	res, err := h.toggle(c, domain.Like)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likeResponse{Liked: res.Active, LikesCount: res.Count})
}

// Retweet toggles the caller's retweet marker on a tweet.
//
// @Summary      Toggle retweet
// @Tags         tweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tweet ID"
// @Success      200  {object}  retweetResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tweets/{id}/retweet [post]
func (h *TweetHandler) Retweet(c echo.Context) error {
	res, err := h.toggle(c, domain.Retweet)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, retweetResponse{Retweeted: res.Active, RetweetsCount: res.Count})
}

// Reply appends a reply to a tweet.
//
// @Summary      Reply to a tweet
// @Tags         tweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Tweet ID"
// @Param        body  body      contentRequest  true  "Reply content"
// @Success      201   {object}  replyResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /tweets/{id}/reply [post]
func (h *TweetHandler) Reply(c echo.Context) error {
	who, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := tweetID(c)
	if err != nil {
		return err
	}
	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload()
	}

	reply, err := h.service.Reply(c.Request().Context(), id, who.ID, who.Username, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReplyResponse(*reply))
}
