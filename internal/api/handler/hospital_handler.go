package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/carelink/hospital-portal/internal/api/metrics"
	"github.com/carelink/hospital-portal/internal/core/domain"
	"github.com/carelink/hospital-portal/internal/core/ports"
)

type HospitalHandler struct {
	specialities ports.SpecialityService
}

func NewHospitalHandler(specialities ports.SpecialityService) *HospitalHandler {
	return &HospitalHandler{specialities: specialities}
}

type specialitySearchResponse struct {
	Speciality string                `json:"speciality"`
	Hospitals  []domain.SourceResult `json:"hospitals"`
}

// SearchSpecialities fans out to every configured hospital source and reports
// which ones offer the requested speciality. A failed source appears in the
// response marked failed; it does not fail the request.
//
// @Summary      Search hospital specialities
// @Tags         hospitals
// @Produce      json
// @Security     BearerAuth
// @Param        speciality  query     string  true  "Speciality to search for"
// @Success      200  {object}  specialitySearchResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /hospitals/specialities [get]
func (h *HospitalHandler) SearchSpecialities(c echo.Context) error {
	speciality := strings.TrimSpace(c.QueryParam("speciality"))
	if speciality == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "speciality query parameter is required"})
	}

	results, err := h.specialities.Search(c.Request().Context(), speciality)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Failed {
			metrics.SourceFetchFailuresTotal.WithLabelValues(r.Source).Inc()
		}
	}

	return c.JSON(http.StatusOK, specialitySearchResponse{
		Speciality: speciality,
		Hospitals:  results,
	})
}
