package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"socialChat/internal/errs"
	"socialChat/internal/models"
	"socialChat/internal/msgs"
	"socialChat/internal/services"
	"socialChat/internal/utils"

	"github.com/gin-gonic/gin"
)

type RestHandler struct {
	chatService *services.ChatService
	userService *services.UserService
}

func NewRestHandler(
	chatService *services.ChatService,
	userService *services.UserService,
) *RestHandler {
	return &RestHandler{
		chatService: chatService,
		userService: userService,
	}
}

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Persists the message and pushes it to the receiver's and sender's live sessions
// @Tags         messages
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      400  {object}  models.Response
// @Failure      503  {object}  models.Response
// @Router       /messages [post]
func (rh *RestHandler) SendMessage(ctx *gin.Context) {
	senderId := utils.GetUserIdFromContext(ctx)
	if senderId < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	var messageRequest models.MessageRequest
	if err := ctx.ShouldBindJSON(&messageRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}

	message, err := rh.chatService.Send(requestContext(ctx), senderId, messageRequest.ReceiverID, messageRequest.Content)
	if err != nil {
		ctx.AbortWithStatusJSON(statusForError(err), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgMessageSent,
		Data:    message,
	})
}

// SendAssistantMessage godoc
// @Summary      Send a message to the assistant
// @Description  Persists the prompt, generates a reply under the assistant identity, and returns the reply
// @Tags         messages
// @Accept       json
// @Produce      json
// @Success      200  {object}  models.Response
// @Failure      403  {object}  models.Response
// @Failure      502  {object}  models.Response
// @Router       /messages/assistant [post]
func (rh *RestHandler) SendAssistantMessage(ctx *gin.Context) {
	senderId := utils.GetUserIdFromContext(ctx)
	if senderId < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	var messageRequest models.AssistantMessageRequest
	if err := ctx.ShouldBindJSON(&messageRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequestBody},
		})
		return
	}

	reply, err := rh.chatService.Send(requestContext(ctx), senderId, rh.chatService.AssistantId(), messageRequest.Content)
	if err != nil {
		ctx.AbortWithStatusJSON(statusForError(err), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgMessageSent,
		Data:    reply,
	})
}

func (rh *RestHandler) GetConversationMessages(ctx *gin.Context) {
	userId := utils.GetUserIdFromContext(ctx)
	if userId < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	otherId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil || otherId < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	page, size := paginationFromQuery(ctx)

	messages, svcErr := rh.chatService.GetConversation(userId, uint(otherId), page, size)
	if svcErr != nil {
		ctx.AbortWithStatusJSON(statusForError(svcErr), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{svcErr},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    messages,
	})
}

func (rh *RestHandler) SeenMessages(ctx *gin.Context) {
	readerId := utils.GetUserIdFromContext(ctx)
	if readerId < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	otherId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil || otherId < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	if svcErr := rh.chatService.SeenMessages(readerId, uint(otherId)); svcErr != nil {
		ctx.AbortWithStatusJSON(statusForError(svcErr), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{svcErr},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgMessagesSeen,
	})
}

func (rh *RestHandler) DeleteMessage(ctx *gin.Context) {
	requesterId := utils.GetUserIdFromContext(ctx)
	if requesterId < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	messageId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || messageId < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	if svcErr := rh.chatService.DeleteMessage(uint(messageId), requesterId); svcErr != nil {
		ctx.AbortWithStatusJSON(statusForError(svcErr), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{svcErr},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgMessageDeleted,
	})
}

func (rh *RestHandler) GetUserConversations(ctx *gin.Context) {
	userId := utils.GetUserIdFromContext(ctx)
	if userId < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	conversations, err := rh.chatService.GetUserConversations(userId)
	if err != nil {
		ctx.AbortWithStatusJSON(statusForError(err), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    conversations,
	})
}

// GetProfile returns the caller's own record, email included.
func (rh *RestHandler) GetProfile(ctx *gin.Context) {
	userId := utils.GetUserIdFromContext(ctx)
	if userId < 1 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	user, err := rh.userService.GetUserById(userId)
	if err != nil {
		ctx.AbortWithStatusJSON(statusForError(err), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    user.ToProfileResponse(),
	})
}

func (rh *RestHandler) GetAllUsersWithPagination(ctx *gin.Context) {
	page, size := paginationFromQuery(ctx)

	response, err := rh.userService.GetAllUsersWithPagination(page, size)
	if err != nil {
		ctx.AbortWithStatusJSON(statusForError(err), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    response,
	})
}

func (rh *RestHandler) GetSingleUser(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidParams},
		})
		return
	}

	user, svcErr := rh.userService.GetSingleUser(uint(id))
	if svcErr != nil {
		ctx.AbortWithStatusJSON(statusForError(svcErr), models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{svcErr},
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    user,
	})
}

func paginationFromQuery(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(ctx.Query("size"))
	if err != nil || size < 1 {
		size = 10
	}
	return page, size
}

func requestContext(ctx *gin.Context) context.Context {
	return ctx.Request.Context()
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrInvalidRequest),
		errors.Is(err, errs.ErrInvalidRequestBody),
		errors.Is(err, errs.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAssistantUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
