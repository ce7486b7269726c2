// Package wheelfs serves a running wheel as a 9P2000 file tree.
//
// Namespace:
//
//	/            directory (root)
//	/ctl         write: one action per line (add, rm, toggle, clear, spin, dismiss, click)
//	/entries     read: one "entry id=.. included=.. label=.." line per entry
//	/active      read: labels on the wheel, one per line
//	/winner      read: the pending winner; write: dismiss it
//	/rotation    read: current rotation in radians
//	/spinning    read: 1 while a spin runs, else 0
//	/wheel.png   read: the wheel as a PNG image
//
// Readable files are snapshotted when opened, so a client reading in
// several chunks sees one consistent state.
package wheelfs

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"9fans.net/go/plan9"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"

	"github.com/elizafairlady/go-wheel/entry"
	"github.com/elizafairlady/go-wheel/proto"
	"github.com/elizafairlady/go-wheel/wheelapp"
)

// Provider is what the server needs from the running wheel.
// *wheelapp.Host implements it.
type Provider interface {
	Ctl(ctx context.Context, line string) error
	Snapshot() wheelapp.Model
	PNG() ([]byte, error)
}

// Qid paths for the namespace.
const (
	qRoot = iota
	qCtl
	qEntries
	qActive
	qWinner
	qRotation
	qSpinning
	qPNG
)

type file struct {
	name string
	path uint64
	perm plan9.Perm
}

var files = []file{
	{"ctl", qCtl, 0200},
	{"entries", qEntries, 0444},
	{"active", qActive, 0444},
	{"winner", qWinner, 0644},
	{"rotation", qRotation, 0444},
	{"spinning", qSpinning, 0444},
	{"wheel.png", qPNG, 0444},
}

var rootQid = plan9.Qid{Path: qRoot, Type: plan9.QTDIR}

func lookup(name string) (file, bool) {
	for _, f := range files {
		if f.name == name {
			return f, true
		}
	}
	return file{}, false
}

func byPath(path uint64) (file, bool) {
	for _, f := range files {
		if f.path == path {
			return f, true
		}
	}
	return file{}, false
}

// Server is a 9P2000 file server for one wheel.
type Server struct {
	prov   Provider
	ctx    context.Context
	cancel context.CancelFunc
	start  time.Time

	mu     sync.Mutex
	lns    []net.Listener
	conns  map[*conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// New creates a server backed by the given provider.
func New(prov Provider) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		prov:   prov,
		ctx:    ctx,
		cancel: cancel,
		start:  time.Now(),
		conns:  make(map[*conn]struct{}),
	}
}

// ErrServerClosed is returned by Serve after Close.
var ErrServerClosed = errors.New("wheelfs: server closed")

// Serve accepts connections on ln, one goroutine each, until ln fails
// or the server is closed.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.lns = append(s.lns, ln)
	s.mu.Unlock()

	log.Info().Str("addr", ln.Addr().String()).Msg("wheelfs: listening")
	for {
		nc, err := ln.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}
			return err
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.ServeConn(nc)
		}()
	}
}

// ServeConn handles 9P messages on rwc until it fails or is closed.
func (s *Server) ServeConn(rwc io.ReadWriteCloser) {
	c := &conn{srv: s, rwc: rwc, msize: 8192 + plan9.IOHDRSIZE, fids: make(map[uint32]*fidState)}
	if !s.track(c, true) {
		rwc.Close()
		return
	}
	defer s.track(c, false)
	c.serve()
}

func (s *Server) track(c *conn, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		if s.closed {
			return false
		}
		s.conns[c] = struct{}{}
		return true
	}
	delete(s.conns, c)
	return true
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close stops all listeners and connections, then waits for the
// connection goroutines to exit.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cancel()
	var err error
	for _, ln := range s.lns {
		err = multierr.Append(err, ln.Close())
	}
	for c := range s.conns {
		err = multierr.Append(err, c.rwc.Close())
	}
	s.mu.Unlock()

	s.wg.Wait()
	return err
}

// fidState tracks the server-side state of a fid.
type fidState struct {
	qid  plan9.Qid
	mode uint8
	open bool
	data []byte // snapshot taken at open
}

// conn handles a single 9P connection.
type conn struct {
	srv   *Server
	rwc   io.ReadWriteCloser
	msize uint32

	mu   sync.Mutex
	fids map[uint32]*fidState
}

func (c *conn) getFid(fid uint32) *fidState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fids[fid]
}

func (c *conn) setFid(fid uint32, f *fidState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fids[fid] = f
}

func (c *conn) delFid(fid uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.fids, fid)
}

func (c *conn) serve() {
	defer c.rwc.Close()
	for {
		tx, err := plan9.ReadFcall(c.rwc)
		if err != nil {
			if err != io.EOF && !c.srv.isClosed() {
				log.Error().Err(err).Msg("wheelfs: read fcall")
			}
			return
		}
		rx := c.handle(tx)
		rx.Tag = tx.Tag
		if err := plan9.WriteFcall(c.rwc, rx); err != nil {
			if !c.srv.isClosed() {
				log.Error().Err(err).Msg("wheelfs: write fcall")
			}
			return
		}
	}
}

func (c *conn) handle(tx *plan9.Fcall) *plan9.Fcall {
	switch tx.Type {
	case plan9.Tversion:
		return c.tversion(tx)
	case plan9.Tauth:
		return rerror("authentication not required")
	case plan9.Tattach:
		return c.tattach(tx)
	case plan9.Tflush:
		return &plan9.Fcall{Type: plan9.Rflush}
	case plan9.Twalk:
		return c.twalk(tx)
	case plan9.Topen:
		return c.topen(tx)
	case plan9.Tcreate:
		return rerror("create prohibited")
	case plan9.Tread:
		return c.tread(tx)
	case plan9.Twrite:
		return c.twrite(tx)
	case plan9.Tclunk:
		return c.tclunk(tx)
	case plan9.Tremove:
		return rerror("remove prohibited")
	case plan9.Tstat:
		return c.tstat(tx)
	case plan9.Twstat:
		return rerror("wstat prohibited")
	default:
		return rerror("unknown message type " + strconv.Itoa(int(tx.Type)))
	}
}

func rerror(msg string) *plan9.Fcall {
	return &plan9.Fcall{Type: plan9.Rerror, Ename: msg}
}

// Smallest msize that still leaves room for a directory entry after
// the message header.
const minMsize = 256

func (c *conn) tversion(tx *plan9.Fcall) *plan9.Fcall {
	if tx.Msize < minMsize {
		return rerror("msize too small")
	}
	c.msize = tx.Msize
	if c.msize > 65536 {
		c.msize = 65536
	}
	version := plan9.VERSION9P
	if !strings.HasPrefix(tx.Version, "9P2000") {
		version = "unknown"
	}
	return &plan9.Fcall{
		Type:    plan9.Rversion,
		Msize:   c.msize,
		Version: version,
	}
}

func (c *conn) tattach(tx *plan9.Fcall) *plan9.Fcall {
	c.setFid(tx.Fid, &fidState{qid: rootQid})
	return &plan9.Fcall{
		Type: plan9.Rattach,
		Qid:  rootQid,
	}
}

func (c *conn) twalk(tx *plan9.Fcall) *plan9.Fcall {
	f := c.getFid(tx.Fid)
	if f == nil {
		return rerror("unknown fid")
	}
	if f.open {
		return rerror("fid is open")
	}

	cur := f.qid
	wqid := make([]plan9.Qid, 0, len(tx.Wname))
	for _, name := range tx.Wname {
		if cur.Type&plan9.QTDIR == 0 {
			break
		}
		if name == ".." {
			cur = rootQid
		} else if fl, ok := lookup(name); ok {
			cur = plan9.Qid{Path: fl.path, Type: plan9.QTFILE}
		} else {
			break
		}
		wqid = append(wqid, cur)
	}
	if len(wqid) == 0 && len(tx.Wname) > 0 {
		return rerror("file does not exist")
	}
	if len(wqid) == len(tx.Wname) {
		c.setFid(tx.Newfid, &fidState{qid: cur})
	}
	return &plan9.Fcall{
		Type: plan9.Rwalk,
		Wqid: wqid,
	}
}

func (c *conn) topen(tx *plan9.Fcall) *plan9.Fcall {
	f := c.getFid(tx.Fid)
	if f == nil {
		return rerror("unknown fid")
	}
	mode := tx.Mode &^ (plan9.OTRUNC | plan9.OCEXEC | plan9.ORCLOSE)
	if f.qid.Type&plan9.QTDIR != 0 {
		if mode != plan9.OREAD {
			return rerror("permission denied")
		}
	} else {
		fl, _ := byPath(f.qid.Path)
		if !allowed(fl.perm, mode) {
			return rerror("permission denied")
		}
		if mode == plan9.OREAD || mode == plan9.ORDWR {
			data, err := c.contents(f.qid.Path)
			if err != nil {
				return rerror(err.Error())
			}
			f.data = data
		}
	}
	f.mode = mode
	f.open = true
	return &plan9.Fcall{
		Type:   plan9.Ropen,
		Qid:    f.qid,
		Iounit: c.msize - plan9.IOHDRSIZE,
	}
}

func allowed(perm plan9.Perm, mode uint8) bool {
	switch mode {
	case plan9.OREAD:
		return perm&0400 != 0
	case plan9.OWRITE:
		return perm&0200 != 0
	case plan9.ORDWR:
		return perm&0600 == 0600
	}
	return false
}

// contents renders a readable file from the current snapshot.
func (c *conn) contents(path uint64) ([]byte, error) {
	prov := c.srv.prov
	if path == qPNG {
		return prov.PNG()
	}
	m := prov.Snapshot()
	switch path {
	case qEntries:
		return []byte(proto.SerializeEntries(m.Entries)), nil
	case qActive:
		return lines(entry.List(m.Active()).Labels()), nil
	case qWinner:
		if m.Winner == "" {
			return nil, nil
		}
		return []byte(m.Winner + "\n"), nil
	case qRotation:
		return []byte(strconv.FormatFloat(m.Spin.Rotation, 'g', -1, 64) + "\n"), nil
	case qSpinning:
		if m.Spin.Spinning {
			return []byte("1\n"), nil
		}
		return []byte("0\n"), nil
	}
	return nil, nil
}

func lines(ss []string) []byte {
	var b strings.Builder
	for _, s := range ss {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func (c *conn) tread(tx *plan9.Fcall) *plan9.Fcall {
	f := c.getFid(tx.Fid)
	if f == nil {
		return rerror("unknown fid")
	}
	if !f.open || f.mode == plan9.OWRITE {
		return rerror("fid not open for reading")
	}
	if f.qid.Type&plan9.QTDIR != 0 {
		return &plan9.Fcall{Type: plan9.Rread, Data: c.readDir(tx.Offset, tx.Count)}
	}
	return &plan9.Fcall{Type: plan9.Rread, Data: sliceRead(f.data, tx.Offset, tx.Count)}
}

func (c *conn) twrite(tx *plan9.Fcall) *plan9.Fcall {
	f := c.getFid(tx.Fid)
	if f == nil {
		return rerror("unknown fid")
	}
	if !f.open || f.mode == plan9.OREAD {
		return rerror("fid not open for writing")
	}

	switch f.qid.Path {
	case qCtl:
		for _, line := range strings.Split(string(tx.Data), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := c.srv.prov.Ctl(c.srv.ctx, line); err != nil {
				return rerror(err.Error())
			}
		}
	case qWinner:
		if err := c.srv.prov.Ctl(c.srv.ctx, "dismiss"); err != nil {
			return rerror(err.Error())
		}
	default:
		return rerror("write prohibited")
	}
	return &plan9.Fcall{Type: plan9.Rwrite, Count: uint32(len(tx.Data))}
}

func (c *conn) tclunk(tx *plan9.Fcall) *plan9.Fcall {
	c.delFid(tx.Fid)
	return &plan9.Fcall{Type: plan9.Rclunk}
}

func (c *conn) tstat(tx *plan9.Fcall) *plan9.Fcall {
	f := c.getFid(tx.Fid)
	if f == nil {
		return rerror("unknown fid")
	}
	var d *plan9.Dir
	if f.qid.Path == qRoot {
		d = c.srv.rootDir()
	} else {
		fl, ok := byPath(f.qid.Path)
		if !ok {
			return rerror("unknown qid")
		}
		d = c.srv.fileDir(fl)
	}
	return &plan9.Fcall{
		Type: plan9.Rstat,
		Stat: dirBytes(d),
	}
}

// readDir returns whole directory entries starting at byte offset.
func (c *conn) readDir(offset uint64, count uint32) []byte {
	var data []byte
	var pos uint64
	for _, fl := range files {
		b := dirBytes(c.srv.fileDir(fl))
		n := uint64(len(b))
		if pos >= offset {
			if uint32(len(data))+uint32(n) > count {
				break
			}
			data = append(data, b...)
		}
		pos += n
	}
	return data
}

func (s *Server) rootDir() *plan9.Dir {
	return s.dir(rootQid, plan9.Perm(plan9.DMDIR|0755), "/")
}

func (s *Server) fileDir(fl file) *plan9.Dir {
	return s.dir(plan9.Qid{Path: fl.path, Type: plan9.QTFILE}, fl.perm, fl.name)
}

func (s *Server) dir(q plan9.Qid, perm plan9.Perm, name string) *plan9.Dir {
	t := uint32(s.start.Unix())
	return &plan9.Dir{
		Qid:   q,
		Mode:  perm,
		Atime: t,
		Mtime: t,
		Name:  name,
		Uid:   "wheel",
		Gid:   "wheel",
		Muid:  "wheel",
	}
}

// dirBytes marshals a Dir into the stat(5) encoding used in Rstat and
// directory reads.
func dirBytes(d *plan9.Dir) []byte {
	b, _ := d.Bytes()
	return b
}

func sliceRead(data []byte, offset uint64, count uint32) []byte {
	if offset >= uint64(len(data)) {
		return nil
	}
	end := offset + uint64(count)
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	return data[offset:end]
}
