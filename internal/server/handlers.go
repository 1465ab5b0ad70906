package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/arcadia-advisors/intake/internal/domain"
	"github.com/arcadia-advisors/intake/internal/modules/attachments"
	"github.com/arcadia-advisors/intake/internal/modules/display"
	"github.com/arcadia-advisors/intake/internal/modules/household"
)

// maxAttachmentBytes caps uploaded identity documents at 10 MB
const maxAttachmentBytes = 10 << 20

// Handlers provides HTTP handlers for the engine API
type Handlers struct {
	household   *household.Service
	attachments *attachments.Store
	formatter   *display.Formatter
	log         zerolog.Logger
}

// NewHandlers creates the engine API handlers
func NewHandlers(svc *household.Service, store *attachments.Store, formatter *display.Formatter, log zerolog.Logger) *Handlers {
	return &Handlers{
		household:   svc,
		attachments: store,
		formatter:   formatter,
		log:         log.With().Str("handler", "api").Logger(),
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"service": "intake",
	}
	writeJSON(s.log, w, http.StatusOK, response)
}

// writeJSON writes a JSON response
func writeJSON(log zerolog.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(h.log, w, status, data)
}

// writeError maps engine errors onto HTTP statuses. Capacity refusals are
// 409; unknown entities are 404; everything else is a 400.
func (h *Handlers) writeError(w http.ResponseWriter, err error) {
	var capacityErr *domain.CapacityError
	status := http.StatusBadRequest
	switch {
	case errors.As(err, &capacityErr):
		status = http.StatusConflict
	case isNotFound(err):
		status = http.StatusNotFound
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}

// HandleGetHousehold handles GET /api/household
func (h *Handlers) HandleGetHousehold(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.household.Snapshot())
}

// HandleSave handles POST /api/household/save
func (h *Handlers) HandleSave(w http.ResponseWriter, r *http.Request) {
	if err := h.household.Save(); err != nil {
		h.log.Error().Err(err).Msg("Failed to save household")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to save household"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// HandleCreateOwner handles POST /api/owners
func (h *Handlers) HandleCreateOwner(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	owner := h.household.CreateOwner(domain.OwnerKind(body.Kind))
	h.writeJSON(w, http.StatusCreated, owner)
}

// HandleUpdateOwnerField handles PUT /api/owners/{ownerID}/fields/{field}
func (h *Handlers) HandleUpdateOwnerField(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")
	field := chi.URLParam(r, "field")

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.household.UpdateOwnerField(ownerID, field, body.Value); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleSetTrustedContact handles PUT /api/owners/{ownerID}/trusted-contact
func (h *Handlers) HandleSetTrustedContact(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	var contact domain.TrustedContact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.household.SetTrustedContact(ownerID, &contact); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleValidateOwner handles GET /api/owners/{ownerID}/validation
func (h *Handlers) HandleValidateOwner(w http.ResponseWriter, r *http.Request) {
	fieldErrors, err := h.household.ValidateOwner(chi.URLParam(r, "ownerID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  fieldErrors.Valid(),
		"errors": fieldErrors,
	})
}

// HandleDeleteOwner handles DELETE /api/owners/{ownerID}
func (h *Handlers) HandleDeleteOwner(w http.ResponseWriter, r *http.Request) {
	if err := h.household.DeleteOwner(chi.URLParam(r, "ownerID")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleCreateAccount handles POST /api/accounts
func (h *Handlers) HandleCreateAccount(w http.ResponseWriter, r *http.Request) {
	account := h.household.CreateAccount()
	h.writeJSON(w, http.StatusCreated, account)
}

// HandleUpdateAccountField handles PUT /api/accounts/{accountID}/fields/{field}
func (h *Handlers) HandleUpdateAccountField(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	field := chi.URLParam(r, "field")

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.household.UpdateAccountField(accountID, field, body.Value); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleSetAccountOwners handles PUT /api/accounts/{accountID}/owners
func (h *Handlers) HandleSetAccountOwners(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	var body struct {
		OwnerIDs       []string `json:"owner_ids"`
		PrimaryOwnerID string   `json:"primary_owner_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := h.household.SetAccountOwners(accountID, body.OwnerIDs, body.PrimaryOwnerID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// HandleValidateAccount handles GET /api/accounts/{accountID}/validation
func (h *Handlers) HandleValidateAccount(w http.ResponseWriter, r *http.Request) {
	fieldErrors, err := h.household.ValidateAccount(chi.URLParam(r, "accountID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  fieldErrors.Valid(),
		"errors": fieldErrors,
	})
}

// HandleDeleteAccount handles DELETE /api/accounts/{accountID}
func (h *Handlers) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.household.DeleteAccount(chi.URLParam(r, "accountID")); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleAddBanking handles POST /api/accounts/{accountID}/banking
func (h *Handlers) HandleAddBanking(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	var entry domain.BankingEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := h.household.AddBankingEntry(accountID, entry)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// HandleRemoveBanking handles DELETE /api/accounts/{accountID}/banking/{entryID}
func (h *Handlers) HandleRemoveBanking(w http.ResponseWriter, r *http.Request) {
	err := h.household.RemoveBankingEntry(chi.URLParam(r, "accountID"), chi.URLParam(r, "entryID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleListFunding handles GET /api/accounts/{accountID}/funding
func (h *Handlers) HandleListFunding(w http.ResponseWriter, r *http.Request) {
	instances, err := h.household.ListFunding(chi.URLParam(r, "accountID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, instances)
}

// HandleAddFunding handles POST /api/accounts/{accountID}/funding/{fundingType}
func (h *Handlers) HandleAddFunding(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	fundingType := domain.FundingType(chi.URLParam(r, "fundingType"))

	var data domain.FundingInstance
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	instance, err := h.household.AddFunding(accountID, fundingType, data)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, instance)
}

// HandleUpdateFunding handles PUT /api/accounts/{accountID}/funding/{fundingType}/{instanceID}
func (h *Handlers) HandleUpdateFunding(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	fundingType := domain.FundingType(chi.URLParam(r, "fundingType"))
	instanceID := chi.URLParam(r, "instanceID")

	var data domain.FundingInstance
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	instance, err := h.household.UpdateFunding(accountID, fundingType, instanceID, data)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, instance)
}

// HandleRemoveFunding handles DELETE /api/accounts/{accountID}/funding/{fundingType}/{instanceID}
func (h *Handlers) HandleRemoveFunding(w http.ResponseWriter, r *http.Request) {
	err := h.household.RemoveFunding(
		chi.URLParam(r, "accountID"),
		domain.FundingType(chi.URLParam(r, "fundingType")),
		chi.URLParam(r, "instanceID"),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleCreateRegistration handles POST /api/registrations
func (h *Handlers) HandleCreateRegistration(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string   `json:"name"`
		LegalType string   `json:"legal_type"`
		OwnerIDs  []string `json:"owner_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	registration := h.household.CreateRegistration(body.Name, body.LegalType, body.OwnerIDs)
	h.writeJSON(w, http.StatusCreated, registration)
}

// HandleGetNavigation handles GET /api/navigation
func (h *Handlers) HandleGetNavigation(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"current":      h.household.Current(),
		"can_advance":  h.household.CanAdvance(),
		"all_complete": h.household.AllComplete(),
	})
}

// HandleNext handles POST /api/navigation/next
func (h *Handlers) HandleNext(w http.ResponseWriter, r *http.Request) {
	step, moved := h.household.Next()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"current": step, "moved": moved})
}

// HandlePrevious handles POST /api/navigation/previous
func (h *Handlers) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	step, moved := h.household.Previous()
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"current": step, "moved": moved})
}

// HandleSelectOwner handles POST /api/navigation/select/owner/{ownerID}
func (h *Handlers) HandleSelectOwner(w http.ResponseWriter, r *http.Request) {
	step, err := h.household.SelectOwner(chi.URLParam(r, "ownerID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"current": step})
}

// HandleSelectAccount handles POST /api/navigation/select/account/{accountID}
func (h *Handlers) HandleSelectAccount(w http.ResponseWriter, r *http.Request) {
	step, err := h.household.SelectAccount(chi.URLParam(r, "accountID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"current": step})
}

// HandleSetReviewMode handles PUT /api/navigation/review-mode
func (h *Handlers) HandleSetReviewMode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	h.household.SetReviewMode(body.Enabled)
	h.writeJSON(w, http.StatusOK, map[string]bool{"review_mode": body.Enabled})
}

// HandleGetCompletion handles GET /api/completion. The completion map is
// keyed "entityID/section" for JSON clients.
func (h *Handlers) HandleGetCompletion(w http.ResponseWriter, r *http.Request) {
	snapshot := h.household.Snapshot()

	flat := make(map[string]bool, len(snapshot.Completion))
	for key, complete := range snapshot.Completion {
		flat[key.EntityID+"/"+string(key.Section)] = complete
	}
	h.writeJSON(w, http.StatusOK, flat)
}

// HandleUploadAttachment handles POST /api/attachments (multipart form
// with a "file" part). Returns the opaque reference the engine stores.
func (h *Handlers) HandleUploadAttachment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAttachmentBytes); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file part"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentBytes))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read file"})
		return
	}

	ref, err := h.attachments.Put(header.Filename, data)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to store attachment")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to store attachment"})
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]string{"ref": ref})
}

// HandleGetAttachment handles GET /api/attachments/{ref}
func (h *Handlers) HandleGetAttachment(w http.ResponseWriter, r *http.Request) {
	data, err := h.attachments.Open(chi.URLParam(r, "ref"))
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "attachment not found"})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(data)
}

// HandleFormatCurrency handles GET /api/format/currency?value=12500.5
func (h *Handlers) HandleFormatCurrency(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	h.writeJSON(w, http.StatusOK, map[string]string{
		"raw":       value,
		"formatted": h.formatter.Currency(value),
	})
}
