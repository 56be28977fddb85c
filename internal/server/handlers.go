// internal/server/handlers.go
package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"mutsim-core/mutate"
	"mutsim-core/sample"
	"mutsim-core/seqio"

	"mutsim/pkg/api"
)

const defaultMaxIndel = 20

// MutateRequest asks for one mutated copy of a sequence. Counts are drawn
// from the Poisson model exactly as the CLI does per (record, cycle,
// replicate) triple.
type MutateRequest struct {
	Sequence string  `json:"sequence"`
	Cycles   int     `json:"cycles"`
	SubRate  float64 `json:"sub_rate"`
	InsRate  float64 `json:"ins_rate"`
	DelRate  float64 `json:"del_rate"`
	MaxIndel int     `json:"max_indel"` // 0 = default 20
}

// MutateResponse carries the mutated sequence and the drawn edit counts.
type MutateResponse struct {
	Sequence string `json:"sequence"`
	NSub     int    `json:"n_sub"`
	NIns     int    `json:"n_ins"`
	NDel     int    `json:"n_del"`
}

// Mutate handles POST /api/mutate.
func (h *Handler) Mutate(w http.ResponseWriter, r *http.Request) {
	var req MutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Sequence == "" {
		httpError(w, http.StatusBadRequest, "sequence is required")
		return
	}
	if req.Cycles < 1 {
		httpError(w, http.StatusBadRequest, "cycles must be >= 1")
		return
	}
	if req.SubRate < 0 || req.InsRate < 0 || req.DelRate < 0 {
		httpError(w, http.StatusBadRequest, "rates must be >= 0")
		return
	}
	maxIndel := req.MaxIndel
	if maxIndel == 0 {
		maxIndel = defaultMaxIndel
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	eng, err := mutate.New(h.src, maxIndel)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	smp := sample.NewSampler(h.src)

	seq := []byte(req.Sequence)
	nSub := smp.Count(req.SubRate, req.Cycles, len(seq))
	nIns := smp.Count(req.InsRate, req.Cycles, len(seq))
	nDel := smp.Count(req.DelRate, req.Cycles, len(seq))

	mutated, err := eng.Mutate(seq, nSub, nIns, nDel)
	if err != nil {
		httpError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, MutateResponse{
		Sequence: string(mutated),
		NSub:     nSub,
		NIns:     nIns,
		NDel:     nDel,
	})
}

// SampleCountRequest asks for one Poisson event-count draw.
type SampleCountRequest struct {
	Rate   float64 `json:"rate"`
	Cycles int     `json:"cycles"`
	Length int     `json:"length"`
}

// SampleCountResponse carries the drawn count.
type SampleCountResponse struct {
	Count int `json:"count"`
}

// SampleCount handles POST /api/sample/count.
func (h *Handler) SampleCount(w http.ResponseWriter, r *http.Request) {
	var req SampleCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rate < 0 {
		httpError(w, http.StatusBadRequest, "rate must be >= 0")
		return
	}
	if req.Cycles < 1 || req.Length < 1 {
		httpError(w, http.StatusBadRequest, "cycles and length must be >= 1")
		return
	}

	h.mu.Lock()
	n := sample.NewSampler(h.src).Count(req.Rate, req.Cycles, req.Length)
	h.mu.Unlock()

	writeJSON(w, SampleCountResponse{Count: n})
}

// SampleIndelLengthRequest asks for one indel length draw.
type SampleIndelLengthRequest struct {
	MaxLength int `json:"max_length"`
}

// SampleIndelLengthResponse carries the drawn length.
type SampleIndelLengthResponse struct {
	Length int `json:"length"`
}

// SampleIndelLength handles POST /api/sample/indel-length.
func (h *Handler) SampleIndelLength(w http.ResponseWriter, r *http.Request) {
	var req SampleIndelLengthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.mu.Lock()
	model, err := sample.NewIndelModel(req.MaxLength, h.src)
	if err != nil {
		h.mu.Unlock()
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	n := model.Sample()
	h.mu.Unlock()

	writeJSON(w, SampleIndelLengthResponse{Length: n})
}

// ParseRecords handles POST /api/records/parse: the body is raw FASTA/FASTQ
// text, the response the parsed records.
func (h *Handler) ParseRecords(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httpError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	rd := seqio.NewReader(bytes.NewReader(body))
	recs := []api.RecordV1{}
	for {
		rec, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
		recs = append(recs, api.RecordV1{
			ID:      rec.ID,
			Seq:     string(rec.Seq),
			Quality: string(rec.Qual),
		})
	}

	writeJSON(w, recs)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
