package site

import (
	"html/template"
	"net/http"
	"strconv"

	"sponsio/config"
	"sponsio/database"
	"sponsio/internal/domain/ads"
	"sponsio/internal/domain/booking"

	"github.com/gin-gonic/gin"
)

// The widget is a self-contained fragment meant for an iframe or direct
// embed in the creator's newsletter page.
var widgetTmpl = template.Must(template.New("widget").Parse(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="utf-8"><title>Sponsor</title></head>
<body style="margin:0;font-family:sans-serif">
{{if .HasAd}}
<a href="{{.ClickURL}}" target="_blank" rel="noopener sponsored">
  <img src="{{.ImageURL}}" alt="Publicité" style="display:block;max-width:100%;height:auto">
</a>
{{else}}
<a href="{{.BookURL}}" target="_blank" rel="noopener"
   style="display:block;padding:24px;text-align:center;color:#444;text-decoration:none;border:1px dashed #bbb">
  Cet emplacement est disponible — sponsorisez cette newsletter
</a>
{{end}}
</body>
</html>`))

type widgetData struct {
	HasAd    bool
	ImageURL string
	ClickURL string
	BookURL  string
}

// GET /widget/:slotId
// Serves the creative when one is approved, otherwise a booking CTA.
// Unknown slots also get the CTA-less fallback shell rather than an error
// page, since the embed renders wherever the creator pasted it.
func GetWidget(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	slotID := c.Param("slotId")

	var slot ads.AdSlot
	if err := database.DB.Where("id = ?", slotID).First(&slot).Error; err != nil {
		renderWidget(c, widgetData{BookURL: config.APP_URL})
		return
	}

	data := widgetData{
		BookURL: config.APP_URL + "/book/" + uintString(slot.CreatorID),
	}

	var b booking.Booking
	if err := database.DB.First(&b, "slot_id = ?", slotID).Error; err == nil && b.Approved() {
		data.HasAd = true
		data.ImageURL = *b.AdImage
		data.ClickURL = config.APP_URL + "/api/click/" + slotID
	}

	renderWidget(c, data)
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func renderWidget(c *gin.Context, data widgetData) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := widgetTmpl.Execute(c.Writer, data); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
