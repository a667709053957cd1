package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/copula.report/internal/copula"
	"github.com/banshee-data/copula.report/internal/mnsig"
)

// handleSignatureChart renders a theoretical signature grid as an
// echarts heatmap (HTML). Debugging-only endpoint to eyeball a
// family's mass distribution without any client tooling.
// Query params: family, tau, k (optional, default 4).
func (s *Server) handleSignatureChart(w http.ResponseWriter, r *http.Request) {
	family, tau, k, ok := s.signatureParams(w, r)
	if !ok {
		return
	}

	sig, err := mnsig.Signature(family, copula.Kendall(tau), k)
	if err != nil {
		s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	labels := make([]string, k)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i+1)
	}

	// Cell index i*k+j holds column i (u axis), row j (v axis).
	data := make([]opts.HeatMapData, 0, len(sig))
	maxMass := 0.0
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			v := sig[i*k+j]
			if v > maxMass {
				maxMass = v
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{i, j, v}})
		}
	}
	if maxMass == 0 {
		maxMass = 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Copula signature", Width: "700px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%v signature", family),
			Subtitle: fmt.Sprintf("tau=%.3f K=%d", tau, k),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: labels, Name: "u"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels, Name: "v"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxMass),
			InRange:    &opts.VisualMapInRange{Color: []string{"#440154", "#31688e", "#35b779", "#fde725"}},
		}),
	)
	hm.AddSeries("mass", data)

	var buf bytes.Buffer
	if err := hm.Render(&buf); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
