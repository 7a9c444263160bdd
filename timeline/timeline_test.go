package timeline_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwrim/continuous-recognition-task-jsPsych/sequence"
	"github.com/nwrim/continuous-recognition-task-jsPsych/timeline"
)

const fixID = "fixation.jpg"

// tinySeq is [TARGET a, FIX, FILLER b, FIX, REPEAT a, FIX].
func tinySeq(t *testing.T) *sequence.Sequence {
	t.Helper()
	seq := sequence.NewSequence(3)
	seq.Append(sequence.Entry{Role: sequence.NewTarget, ItemID: "a.jpg", SourcePath: "img/a.jpg"})
	seq.Append(sequence.Entry{Role: sequence.NewFiller, ItemID: "b.jpg", SourcePath: "img/b.jpg"})
	seq.Append(sequence.Entry{Role: sequence.TargetRepeat, ItemID: "a.jpg", SourcePath: "img/a.jpg"})
	out, err := sequence.InterleaveFixation(seq, sequence.Item{ID: fixID})
	require.NoError(t, err)

	return out
}

func TestDescriptors(t *testing.T) {
	timing := timeline.Timing{Stimulus: 600 * time.Millisecond, ISI: 400 * time.Millisecond}
	descs := timeline.Descriptors(tinySeq(t), timing)
	require.Len(t, descs, 6)

	wantOnsets := []time.Duration{0, 600, 1000, 1600, 2000, 2600}
	for i, d := range descs {
		assert.Equal(t, i, d.Index)
		assert.Equal(t, wantOnsets[i]*time.Millisecond, d.Onset, "onset %d", i)
		if i%2 == 0 {
			assert.Equal(t, 600*time.Millisecond, d.Duration)
		} else {
			assert.Equal(t, 400*time.Millisecond, d.Duration)
			assert.Equal(t, "FIXATION", d.TrialType)
			assert.Equal(t, 0, d.Code)
			assert.Equal(t, fixID, d.Stimulus, "empty path falls back to item id")
		}
	}
	assert.Equal(t, "img/a.jpg", descs[0].Stimulus)
	assert.Equal(t, "TARGET", descs[0].TrialType)
	assert.Equal(t, 2, descs[4].Code)

	assert.Nil(t, timeline.Descriptors(nil, timing))
}

func TestDescriptor_JSON(t *testing.T) {
	d := timeline.Descriptor{Index: 3, Stimulus: "img/x.jpg", ItemID: "x.jpg", Code: 3, TrialType: "FILLER",
		Onset: 2500 * time.Millisecond, Duration: time.Second}

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":3,"stimulus":"img/x.jpg","item_id":"x.jpg","code":3,"trial_type":"FILLER","onset_ms":2500,"duration_ms":1000}`, string(raw))

	var back timeline.Descriptor
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)
}

func TestEncodeDecode(t *testing.T) {
	seq := tinySeq(t)
	sess := timeline.Encode(seq)
	assert.Equal(t, "a.jpg,fixation.jpg,b.jpg,fixation.jpg,a.jpg,fixation.jpg", sess.ImSeq)
	assert.Equal(t, "1,0,3,0,2,0", sess.ImTypeSeq)

	back, err := timeline.Decode(sess)
	require.NoError(t, err)
	assert.Equal(t, seq.Img, back.Img)
	assert.Equal(t, seq.Type, back.Type)
	assert.Empty(t, sequence.Validate(back, fixID, 1, 1))

	empty, err := timeline.Decode(timeline.Session{})
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
	assert.Equal(t, timeline.Session{}, timeline.Encode(nil))
}

func TestDecode_Errors(t *testing.T) {
	_, err := timeline.Decode(timeline.Session{ImSeq: "a,b", ImTypeSeq: "1"})
	assert.ErrorIs(t, err, timeline.ErrLengthMismatch)

	_, err = timeline.Decode(timeline.Session{ImSeq: "a", ImTypeSeq: "x"})
	assert.ErrorIs(t, err, timeline.ErrMalformedSession)

	_, err = timeline.Decode(timeline.Session{ImSeq: "a", ImTypeSeq: "7"})
	assert.ErrorIs(t, err, sequence.ErrUnknownRole)
	assert.Contains(t, err.Error(), timeline.MethodDecode)
}

func TestParseResponses(t *testing.T) {
	resp, err := timeline.ParseResponses("r,,82,", "512.5,,430,")
	require.NoError(t, err)
	assert.Equal(t, []timeline.Response{
		{Key: "r", RT: 512.5},
		{},
		{Key: "82", RT: 430},
		{},
	}, resp)

	_, err = timeline.ParseResponses("r,r", "1")
	assert.ErrorIs(t, err, timeline.ErrLengthMismatch)
	_, err = timeline.ParseResponses("r", "fast")
	assert.ErrorIs(t, err, timeline.ErrMalformedSession)
}

func TestExtract(t *testing.T) {
	descs := timeline.Descriptors(tinySeq(t), timeline.DefaultTiming())
	sess := timeline.Session{KeyPresses: ",,,,R,", RTs: ",,,,640,"}
	resp, err := sess.Responses()
	require.NoError(t, err)

	results, err := timeline.Extract(descs, resp)
	require.NoError(t, err)
	require.Len(t, results, 6)

	responded := 0
	for _, r := range results {
		if r.Responded(nil) {
			responded++
			assert.True(t, r.IsStimulus())
			assert.Equal(t, "REPEAT", r.Trial.TrialType)
			assert.Equal(t, 640.0, r.Response.RT)
		}
	}
	assert.Equal(t, 1, responded)
	assert.False(t, results[4].Responded([]string{"space"}))

	_, err = timeline.Extract(descs, resp[:5])
	assert.ErrorIs(t, err, timeline.ErrLengthMismatch)
}
