package avkit

import (
	"context"
	"sync"
)

// fakeRecorder is a controllable NativeRecorder for coordinator tests.
type fakeRecorder struct {
	mu          sync.Mutex
	status      RecorderStatus
	prepareErr  error
	startErr    error
	pauseErr    error
	resumeErr   error
	stopErr     error
	statusErr   error
	stopCalls   int
	statusCalls int
}

func (f *fakeRecorder) setStatus(status RecorderStatus) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
}

func (f *fakeRecorder) Prepare(ctx context.Context) error { return f.prepareErr }
func (f *fakeRecorder) Start(ctx context.Context) error   { return f.startErr }
func (f *fakeRecorder) Pause(ctx context.Context) error   { return f.pauseErr }
func (f *fakeRecorder) Resume(ctx context.Context) error  { return f.resumeErr }

func (f *fakeRecorder) Stop(ctx context.Context) error {
	f.mu.Lock()
	f.stopCalls++
	f.mu.Unlock()
	return f.stopErr
}

func (f *fakeRecorder) Status(ctx context.Context) (RecorderStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return RecorderStatus{}, f.statusErr
	}
	return f.status, nil
}

func (f *fakeRecorder) statusCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

func (f *fakeRecorder) stopCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopCalls
}

// fakeSound is a controllable NativeSound for coordinator tests.
type fakeSound struct {
	mu          sync.Mutex
	status      PlaybackStatus
	playErr     error
	pauseErr    error
	stopErr     error
	seekErr     error
	setErr      error
	unloadErr   error
	statusErr   error
	seeks       []int64
	volumes     []float64
	rates       []float64
	unloaded    bool
	statusCalls int
}

func (f *fakeSound) setStatus(status PlaybackStatus) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
}

func (f *fakeSound) Play(ctx context.Context) error  { return f.playErr }
func (f *fakeSound) Pause(ctx context.Context) error { return f.pauseErr }
func (f *fakeSound) Stop(ctx context.Context) error  { return f.stopErr }

func (f *fakeSound) Seek(ctx context.Context, positionMillis int64) error {
	if f.seekErr != nil {
		return f.seekErr
	}
	f.mu.Lock()
	f.seeks = append(f.seeks, positionMillis)
	f.mu.Unlock()
	return nil
}

func (f *fakeSound) SetVolume(ctx context.Context, volume float64) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	f.volumes = append(f.volumes, volume)
	f.mu.Unlock()
	return nil
}

func (f *fakeSound) SetRate(ctx context.Context, rate float64, correctPitch bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	f.rates = append(f.rates, rate)
	f.mu.Unlock()
	return nil
}

func (f *fakeSound) SetLooping(ctx context.Context, looping bool) error { return f.setErr }
func (f *fakeSound) SetMuted(ctx context.Context, muted bool) error     { return f.setErr }

func (f *fakeSound) Unload(ctx context.Context) error {
	f.mu.Lock()
	f.unloaded = true
	f.mu.Unlock()
	return f.unloadErr
}

func (f *fakeSound) Status(ctx context.Context) (PlaybackStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return PlaybackStatus{}, f.statusErr
	}
	return f.status, nil
}

func (f *fakeSound) statusCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

// fakeModule hands out preconfigured fakes and records allocations.
type fakeModule struct {
	mu             sync.Mutex
	recorder       *fakeRecorder
	sound          *fakeSound
	recorderErr    error
	soundErr       error
	permission     PermissionStatus
	permissionErr  error
	mode           AudioMode
	modeErr        error
	recorderCalls  int
	soundCalls     int
	lastSoundOpts  PlaybackOptions
	lastRecOptions NativeRecordingOptions
}

func newFakeModule() *fakeModule {
	return &fakeModule{
		recorder:   &fakeRecorder{},
		sound:      &fakeSound{status: PlaybackStatus{IsLoaded: true}},
		permission: PermissionGranted,
	}
}

func (m *fakeModule) NewRecorder(ctx context.Context, opts NativeRecordingOptions) (NativeRecorder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorderCalls++
	m.lastRecOptions = opts
	if m.recorderErr != nil {
		return nil, m.recorderErr
	}
	return m.recorder, nil
}

func (m *fakeModule) NewSound(ctx context.Context, uri string, opts PlaybackOptions) (NativeSound, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.soundCalls++
	m.lastSoundOpts = opts
	if m.soundErr != nil {
		return nil, m.soundErr
	}
	m.sound.mu.Lock()
	m.sound.status.URI = uri
	m.sound.mu.Unlock()
	return m.sound, nil
}

func (m *fakeModule) RequestPermission(ctx context.Context) (PermissionStatus, error) {
	return m.permission, m.permissionErr
}

func (m *fakeModule) GetPermissionStatus(ctx context.Context) (PermissionStatus, error) {
	return m.permission, m.permissionErr
}

func (m *fakeModule) SetAudioMode(ctx context.Context, mode AudioMode) error {
	m.mu.Lock()
	m.mode = mode
	m.mu.Unlock()
	return m.modeErr
}

var _ NativeModule = (*fakeModule)(nil)
