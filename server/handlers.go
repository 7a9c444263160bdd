// SPDX-License-Identifier: MIT
// Package: crt/server
//
// handlers.go - request handlers.

package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nwrim/continuous-recognition-task-jsPsych/rng"
	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
	"github.com/nwrim/continuous-recognition-task-jsPsych/timeline"
)

// paramsRequest carries optional overrides of the server defaults, from a
// query string or a JSON body.
type paramsRequest struct {
	TargetNum         *int  `json:"target_num" form:"target_num"`
	BlockSize         *int  `json:"block_size" form:"block_size"`
	FirstRepeatDelay  *int  `json:"first_repeat_delay" form:"first_repeat_delay"`
	MinRepeatDelay    *int  `json:"min_repeat_delay" form:"min_repeat_delay"`
	VigilanceInterval *int  `json:"vigilance_interval" form:"vigilance_interval"`
	FixedOrder        *bool `json:"fixed_order" form:"fixed_order"`
}

// apply overlays the set fields of r on p.
func (r paramsRequest) apply(p sequence.Params) sequence.Params {
	if r.TargetNum != nil {
		p.TargetNum = *r.TargetNum
	}
	if r.BlockSize != nil {
		p.BlockSize = *r.BlockSize
	}
	if r.FirstRepeatDelay != nil {
		p.FirstRepeatDelay = *r.FirstRepeatDelay
	}
	if r.MinRepeatDelay != nil {
		p.MinRepeatDelay = *r.MinRepeatDelay
	}
	if r.VigilanceInterval != nil {
		p.VigilanceInterval = *r.VigilanceInterval
	}
	if r.FixedOrder != nil {
		p.FixedOrder = *r.FixedOrder
	}

	return p
}

type sequenceRequest struct {
	paramsRequest
	Seed *int64 `json:"seed"`
}

type validateRequest struct {
	timeline.Session
	ExpectedTargets   int    `json:"expected_targets"`
	ExpectedFillers   int    `json:"expected_fillers"`
	ExpectedVigilance *int   `json:"expected_vigilance"`
	FixationID        string `json:"fixation_id"`
}

// statusFor maps generation errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sequence.ErrConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, sequence.ErrInsufficientItems):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"uptime":        time.Since(s.startTime).String(),
		"target_images": len(s.pools.Targets),
		"filler_images": len(s.pools.Fillers),
		"shared_pool":   s.pools.Shared(),
	})
}

func (s *Server) handleCounts(c *gin.Context) {
	var req paramsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}
	p := req.apply(s.defaults)

	counts, err := p.Counts()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	poolErr := counts.CheckPools(len(s.pools.Targets), len(s.pools.Fillers), s.pools.Shared())

	resp := gin.H{
		"params":     p,
		"counts":     counts,
		"items":      counts.Items(),
		"pool_ready": poolErr == nil,
	}
	if poolErr != nil {
		resp["pool_error"] = poolErr.Error()
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSequence(c *gin.Context) {
	var req sequenceRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
			return
		}
	}
	p := req.apply(s.defaults)

	seed := rng.New().Int63()
	if req.Seed != nil {
		seed = *req.Seed
	}

	res, err := sequence.Generate(s.pools, p, s.fixation, sequence.WithSeed(seed))
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Printf("server: generate failed (seed %d, params %+v): %v", seed, p, err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"seed":        seed,
		"params":      p,
		"counts":      res.Counts,
		"session":     timeline.Encode(res.Sequence),
		"codes":       res.Sequence.Codes(),
		"descriptors": timeline.Descriptors(res.Sequence, s.timing),
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	seq, err := timeline.Decode(req.Session)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fixationID := req.FixationID
	if fixationID == "" {
		fixationID = s.fixation.ID
	}
	var opts []sequence.CheckOption
	if req.ExpectedVigilance != nil {
		if *req.ExpectedVigilance < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected_vigilance must be ≥ 0"})
			return
		}
		opts = append(opts, sequence.WithVigilanceCount(*req.ExpectedVigilance))
	}

	findings := sequence.Validate(seq, fixationID, req.ExpectedTargets, req.ExpectedFillers, opts...)
	if req.KeyPresses != "" || req.RTs != "" {
		resp, err := req.Responses()
		switch {
		case err != nil:
			findings = append(findings, err.Error())
		case len(resp) != seq.Len():
			findings = append(findings, fmt.Sprintf("%d responses logged for %d trials", len(resp), seq.Len()))
		}
	}

	if findings == nil {
		findings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":    len(findings) == 0,
		"trials":   seq.Len(),
		"findings": findings,
	})
}
