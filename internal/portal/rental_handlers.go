package portal

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/spacehash/portal/internal/catalog"
	"github.com/spacehash/portal/internal/contract"
	"github.com/spacehash/portal/internal/delivery"
	"github.com/spacehash/portal/internal/errl"
	"github.com/spacehash/portal/internal/models"
	"github.com/spacehash/portal/internal/selection"
)

const (
	rentalsEndpoint     = "/rentals"
	addDateEndpoint     = "/rentals/dates/add"
	removeDateEndpoint  = "/rentals/dates/remove"
	holdStartEndpoint   = "/rentals/hold/start"
	holdReleaseEndpoint = "/rentals/hold/release"
	setQuantityEndpoint = "/rentals/quantity"
	submitEndpoint      = "/rentals/submit"
	contractsEndpoint   = "/rentals/contracts"
)

const (
	rentalCookie = "rental_session"
	dateLayout   = "2006-01-02"
)

// rentalSession ties one browser session's selection state to its
// press-and-hold tracker and its currently active contract set.
type rentalSession struct {
	ID        string
	State     *selection.State
	Hold      selection.HoldTracker
	ActiveSet string
}

func sessionKey(id string) string  { return "rental:" + id }
func contractKey(id string) string { return "contracts:" + id }

func (s *Server) registerRentalHandlers() {

	// The rental request form
	s.httpServer.Get(rentalsEndpoint, s.pageRentals)

	// Selection state mutations
	s.httpServer.Post(addDateEndpoint, s.addDate)
	s.httpServer.Post(removeDateEndpoint, s.removeDate)
	s.httpServer.Post(holdStartEndpoint, s.holdStart)
	s.httpServer.Post(holdReleaseEndpoint, s.holdRelease)
	s.httpServer.Post(setQuantityEndpoint, s.setQuantity)

	// Submission generates the contracts and opens the preview
	s.httpServer.Post(submitEndpoint, s.submitRequest)

	// Preview, download, email prompt and release of a generated set
	s.httpServer.Get(contractsEndpoint+"/:id", s.pageContractPreview)
	s.httpServer.Get(contractsEndpoint+"/:id/doc/:index", s.serveContract)
	s.httpServer.Post(contractsEndpoint+"/:id/download", s.downloadContracts)
	s.httpServer.Get(contractsEndpoint+"/:id/qr.png", s.serveEmailQR)
	s.httpServer.Post(contractsEndpoint+"/:id/close", s.closeContracts)

}

// rentalSessionFor returns the session bound to the request's cookie,
// creating a fresh one when the cookie is absent or the session expired.
func (s *Server) rentalSessionFor(c *fiber.Ctx) *rentalSession {
	if id := c.Cookies(rentalCookie); id != "" {
		if v, ok := s.cache.Get(sessionKey(id)); ok {
			return v.(*rentalSession)
		}
	}

	sess := &rentalSession{ID: uuid.NewString(), State: selection.NewState()}
	s.cache.Set(sessionKey(sess.ID), sess, 0)
	c.Cookie(&fiber.Cookie{Name: rentalCookie, Value: sess.ID, HTTPOnly: true, SameSite: "Lax"})
	return sess
}

// touch refreshes the session's TTL after a mutation.
func (s *Server) touch(sess *rentalSession) {
	s.cache.Set(sessionKey(sess.ID), sess, 0)
}

type equipmentRow struct {
	Item catalog.EquipmentItem
	Qty  int
}

type dateChip struct {
	Index int
	Label string
}

func (s *Server) pageRentals(c *fiber.Ctx) error {
	sess := s.rentalSessionFor(c)

	rows := make([]equipmentRow, 0, len(s.catalog.Equipment))
	for _, item := range s.catalog.Equipment {
		rows = append(rows, equipmentRow{Item: item, Qty: sess.State.Qty(item.ID)})
	}

	chips := make([]dateChip, 0, len(sess.State.Dates))
	for i, d := range sess.State.Dates {
		chips = append(chips, dateChip{Index: i, Label: d.Format("Jan 2, 2006")})
	}

	return s.htmlRender.Render(c, "rentals", s.viewData(fiber.Map{
		"ready":            s.catalog.Loaded(),
		"rows":             rows,
		"dates":            chips,
		"hasDates":         sess.State.HasDates(),
		"hasSelections":    sess.State.HasSelections(),
		"perDayTotal":      contract.Amount(sess.State.PerDayTotal(s.catalog.Equipment)),
		"generationFailed": c.Query("failed") == "1",
		"holdMillis":       selection.HoldDuration.Milliseconds(),
	}), "layouts/main")
}

func (s *Server) addDate(c *fiber.Ctx) error {
	sess := s.rentalSessionFor(c)

	// An unparseable date behaves like the null date: rejected, no-op.
	if d, err := time.Parse(dateLayout, c.FormValue("date")); err == nil {
		sess.State.AddDate(d, s.catalog.Unavailable)
		s.touch(sess)
	}

	return c.Redirect(rentalsEndpoint, fiber.StatusSeeOther)
}

func (s *Server) removeDate(c *fiber.Ctx) error {
	sess := s.rentalSessionFor(c)

	if index, err := strconv.Atoi(c.FormValue("index")); err == nil {
		sess.State.RemoveDate(index)
		s.touch(sess)
	}

	return c.Redirect(rentalsEndpoint, fiber.StatusSeeOther)
}

func (s *Server) holdStart(c *fiber.Ctx) error {
	sess := s.rentalSessionFor(c)
	sess.Hold.Start(time.Now())
	s.touch(sess)
	return c.SendStatus(fiber.StatusNoContent)
}

// holdRelease ends the press-and-hold gesture. Only a hold that ran the full
// duration clears the selected dates; an early release just resets.
func (s *Server) holdRelease(c *fiber.Ctx) error {
	sess := s.rentalSessionFor(c)

	cleared := sess.Hold.Release(time.Now())
	if cleared {
		sess.State.ClearDates()
	}
	s.touch(sess)

	return c.JSON(fiber.Map{"cleared": cleared})
}

func (s *Server) setQuantity(c *fiber.Ctx) error {
	sess := s.rentalSessionFor(c)

	if id, err := strconv.Atoi(c.FormValue("item")); err == nil {
		if item, ok := s.catalog.Item(id); ok {
			sess.State.SetQuantity(item.ID, c.FormValue("quantity"), item.MaxQty)
			s.touch(sess)
		}
	}

	return c.Redirect(rentalsEndpoint, fiber.StatusSeeOther)
}

func (s *Server) submitRequest(c *fiber.Ctx) error {
	sess := s.rentalSessionFor(c)

	form := models.RentalRequestForm{}
	if err := c.BodyParser(&form); err != nil {
		slog.Error("Failed to parse rental form", "error", err)
		return c.Redirect(rentalsEndpoint+"?failed=1", fiber.StatusSeeOther)
	}
	form.Normalize()

	// The submit button is disabled client-side until the form is valid;
	// this is the actual precondition gate.
	selected := sess.State.SelectedItems(s.catalog.Equipment)
	if err := form.Validate(); err != nil || len(selected) == 0 || !sess.State.HasDates() {
		slog.Info("Rejecting invalid rental submission",
			"items", len(selected), "dates", len(sess.State.Dates))
		return c.Redirect(rentalsEndpoint, fiber.StatusSeeOther)
	}

	perDayTotal := sess.State.PerDayTotal(s.catalog.Equipment)

	generated, err := s.filler.Fill(c.Context(), contract.Request{
		Dates:    sess.State.Dates,
		Items:    selected,
		Quantity: sess.State.Qty,
		Renter: contract.RenterInfo{
			Name:        form.Name,
			Business:    form.Business,
			Address:     form.Address,
			Phone:       form.Phone,
			ContactInfo: form.ContactInfo,
		},
		PerDayTotal: perDayTotal,
	})
	if err != nil {
		// The whole batch fails; the user stays on the form and can retry.
		slog.Error("Failed to generate contract previews", "error", err)
		return c.Redirect(rentalsEndpoint+"?failed=1", fiber.StatusSeeOther)
	}

	lines := make([]delivery.SummaryLine, 0, len(selected))
	for _, item := range selected {
		lines = append(lines, delivery.SummaryLine{
			Name: item.Name,
			Qty:  sess.State.Qty(item.ID),
			Cost: item.Cost,
		})
	}

	set := delivery.NewContractSet(form.Name, generated, lines, perDayTotal, strings.TrimSpace(form.Comments))

	// A new generation pass supersedes the previous set and releases its
	// document buffers.
	if sess.ActiveSet != "" {
		s.cache.Delete(contractKey(sess.ActiveSet))
	}
	sess.ActiveSet = set.ID
	s.cache.Set(contractKey(set.ID), set, 0)
	s.touch(sess)

	slog.Info("Generated rental contracts", "set", set.ID, "documents", len(generated))
	return c.Redirect(contractsEndpoint+"/"+set.ID, fiber.StatusSeeOther)
}

func (s *Server) contractSetFor(c *fiber.Ctx) (*delivery.ContractSet, error) {
	id := c.Params("id")
	v, ok := s.cache.Get(contractKey(id))
	if !ok {
		return nil, errl.Errorf("contract set not found or expired: %s", id)
	}
	return v.(*delivery.ContractSet), nil
}

type previewPage struct {
	Index  int
	Label  int
	Active bool
}

func (s *Server) pageContractPreview(c *fiber.Ctx) error {
	set, err := s.contractSetFor(c)
	if err != nil {
		slog.Error(err.Error())
		return c.Redirect(rentalsEndpoint, fiber.StatusSeeOther)
	}

	index := c.QueryInt("doc", set.Current)
	if index < 0 || index >= len(set.Documents) {
		index = 0
	}
	set.Current = index
	s.cache.Set(contractKey(set.ID), set, 0)

	pages := make([]previewPage, 0, len(set.Documents))
	for i := range set.Documents {
		pages = append(pages, previewPage{Index: i, Label: i + 1, Active: i == index})
	}

	base := contractsEndpoint + "/" + set.ID
	return s.htmlRender.Render(c, "preview", s.viewData(fiber.Map{
		"setID":       set.ID,
		"docURL":      base + "/doc/" + strconv.Itoa(index),
		"pages":       pages,
		"baseURL":     base,
		"downloadURL": base + "/download",
		"closeURL":    base + "/close",
	}), "layouts/main")
}

func (s *Server) serveContract(c *fiber.Ctx) error {
	set, err := s.contractSetFor(c)
	if err != nil {
		slog.Error(err.Error())
		return c.SendStatus(fiber.StatusNotFound)
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	doc, ok := set.Document(index)
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	c.Set("Content-Type", "application/pdf")
	if c.Query("download") == "1" {
		c.Set("Content-Disposition", `attachment; filename="`+set.DownloadNameAt(index)+`"`)
	}
	return c.Send(doc.Data)
}

type downloadFile struct {
	URL  string
	Name string
}

// downloadContracts moves the set through downloaded straight into the
// email prompt: the rendered page saves one file per date and immediately
// asks the user to email the business, attaching the files manually.
func (s *Server) downloadContracts(c *fiber.Ctx) error {
	set, err := s.contractSetFor(c)
	if err != nil {
		slog.Error(err.Error())
		return c.Redirect(rentalsEndpoint, fiber.StatusSeeOther)
	}

	if err := set.Advance(delivery.StateDownloaded); err != nil {
		slog.Error("Download rejected", "error", err, "set", set.ID)
		return c.Redirect(contractsEndpoint+"/"+set.ID, fiber.StatusSeeOther)
	}

	base := contractsEndpoint + "/" + set.ID
	files := make([]downloadFile, 0, len(set.Documents))
	for i := range set.Documents {
		files = append(files, downloadFile{
			URL:  base + "/doc/" + strconv.Itoa(i) + "?download=1",
			Name: set.DownloadNameAt(i),
		})
	}

	if err := set.Advance(delivery.StateEmailPrompted); err != nil {
		slog.Error("Email prompt rejected", "error", err, "set", set.ID)
	}
	s.cache.Set(contractKey(set.ID), set, 0)

	mailto := delivery.ComposeMailto(delivery.EmailSummaryFor(set, s.cfg.Rentals.ContactEmail))
	return s.htmlRender.Render(c, "email_prompt", s.viewData(fiber.Map{
		"files":    files,
		"email":    s.cfg.Rentals.ContactEmail,
		"mailto":   mailto,
		"qrURL":    base + "/qr.png",
		"closeURL": base + "/close",
	}), "layouts/main")
}

func (s *Server) serveEmailQR(c *fiber.Ctx) error {
	set, err := s.contractSetFor(c)
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}

	uri := delivery.ComposeMailto(delivery.EmailSummaryFor(set, s.cfg.Rentals.ContactEmail))
	png, err := qrcode.Encode(uri, qrcode.Medium, 256)
	if err != nil {
		slog.Error("Failed to encode email QR", "error", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// closeContracts returns the flow to idle and releases the generated
// document buffers, whichever screen it was invoked from.
func (s *Server) closeContracts(c *fiber.Ctx) error {
	sess := s.rentalSessionFor(c)

	if set, err := s.contractSetFor(c); err == nil {
		if err := set.Advance(delivery.StateIdle); err != nil {
			slog.Debug("Close from terminal state", "error", err)
		}
		s.cache.Delete(contractKey(set.ID))
		if sess.ActiveSet == set.ID {
			sess.ActiveSet = ""
			s.touch(sess)
		}
	}

	return c.Redirect(rentalsEndpoint, fiber.StatusSeeOther)
}
