// Automation HTTP handler.
//
// POST /internal/run-weekly triggers the Sunday batch compile for every
// known user. The route sits behind the shared-secret middleware; this
// handler only runs the batch and reports the outcome. A run on any day
// other than Sunday is a no-op report, not an error.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunWeekly godoc
// @ID          runWeekly
// @Summary     Run the weekly compile batch
// @Description Compiles the current week's chapter for every user with a profile. Only runs on Sunday in the configured timezone; other days return a skipped report. One user's failure never aborts the batch.
// @Tags        Automation
// @Produce     json
//
// @Param       X-Automation-Secret  header  string  true  "Shared automation secret"
//
// @Success     200  {object}  services.BatchReport
// @Failure     403  {object}  handlers.ErrorResponse  "Invalid secret"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /internal/run-weekly [post]
func (h *Handlers) RunWeekly(c *gin.Context) {
	report, err := h.autoSvc.RunWeeklyBatch(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "weekly batch failed to start")
		return
	}
	ok(c, http.StatusOK, report)
}
