package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mapty/internal/render"
	"mapty/internal/service"
)

type PageHandler struct {
	app *service.AppService
}

type pageData struct {
	Entries []render.SidebarEntry
	Form    service.FormView
	Input   service.FormInput
	Alert   string
}

func NewPageHandler(app *service.AppService) *PageHandler {
	return &PageHandler{app: app}
}

func (h *PageHandler) Index(c *gin.Context) {
	h.renderPage(c, http.StatusOK, service.FormInput{}, "")
}

// SubmitForm handles the plain HTML form post. Rejected input re-renders the
// page with an alert and the inputs as typed.
func (h *PageHandler) SubmitForm(c *gin.Context) {
	var input service.FormInput
	if err := c.ShouldBind(&input); err != nil {
		h.renderPage(c, http.StatusBadRequest, input, service.MessageInvalidInput)
		return
	}

	if _, apiErr := h.app.CreateWorkout(c.Request.Context(), input); apiErr != nil {
		h.renderPage(c, apiErr.Status, input, apiErr.Message)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) Reset(c *gin.Context) {
	if apiErr := h.app.Reset(c.Request.Context()); apiErr != nil {
		h.renderPage(c, apiErr.Status, service.FormInput{}, apiErr.Message)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) renderPage(c *gin.Context, status int, input service.FormInput, alert string) {
	c.HTML(status, "index.html", pageData{
		Entries: render.Sidebar(h.app.Workouts()),
		Form:    h.app.Form(),
		Input:   input,
		Alert:   alert,
	})
}
