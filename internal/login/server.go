package login

import (
	"bufio"
	"context"
	"net"
	"strings"

	"github.com/boutgo/server/internal/persist"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
)

// Login result codes, carried as the first byte of the response body.
const (
	loginOK            = 0x00
	loginBadUser       = 0x01
	loginBadPass       = 0x02
	loginBanned        = 0x03
	loginAlreadyOnline = 0x04
)

// loginBodyLen is the fixed response body size after the 4-byte header.
const loginBodyLen = 76

// loginHeader prefixes every login response.
var loginHeader = []byte{0xEC, 0x2C, 0x4A, 0x00}

// Server is the account gate: it authenticates the client's md5 login
// token over a line-based TCP exchange and records the peer address the
// channel server later authenticates by.
type Server struct {
	listener   net.Listener
	accounts   *persist.AccountRepo
	autoCreate bool
	log        *zap.Logger
	closeCh    chan struct{}
}

func NewServer(bindAddr string, accounts *persist.AccountRepo, autoCreate bool, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener:   ln,
		accounts:   accounts,
		autoCreate: autoCreate,
		log:        log,
		closeCh:    make(chan struct{}),
	}, nil
}

// Serve accepts login connections until Shutdown.
func (s *Server) Serve(ctx context.Context) {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return
			default:
			}
			s.log.Error("登入連線接受失敗", zap.Error(err))
			continue
		}
		go s.handle(ctx, conn)
	}
}

func (s *Server) Shutdown() {
	close(s.closeCh)
	s.listener.Close()
}

func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// handle runs one login exchange: a "H"-prefixed username line, then the
// 32-hex md5 token line, both null-terminated latin-1. Exactly one
// response frame goes back, then the connection closes.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	ip := peerHost(conn)
	log := s.log.With(zap.String("ip", ip))

	br := bufio.NewReader(conn)

	userLine, err := readLine(br)
	if err != nil {
		log.Debug("登入讀取失敗", zap.Error(err))
		return
	}
	username := strings.TrimPrefix(userLine, "H")

	token, err := readLine(br)
	if err != nil {
		log.Debug("登入讀取失敗", zap.Error(err))
		return
	}

	code := s.authenticate(ctx, username, token, ip, log)
	s.respond(conn, code, log)
}

func (s *Server) authenticate(ctx context.Context, username, token, ip string, log *zap.Logger) byte {
	if username == "" || !isHexToken(token) {
		return loginBadPass
	}

	acct, err := s.accounts.Load(ctx, username)
	if err != nil {
		log.Error("帳號讀取失敗", zap.String("user", username), zap.Error(err))
		return loginBadUser
	}
	if acct == nil {
		if !s.autoCreate {
			log.Info("登入失敗：帳號不存在", zap.String("user", username))
			return loginBadUser
		}
		acct, err = s.accounts.Create(ctx, username, token)
		if err != nil {
			log.Error("帳號自動建立失敗", zap.String("user", username), zap.Error(err))
			return loginBadUser
		}
		log.Info("帳號已自動建立", zap.String("user", username))
	}

	if !s.accounts.ValidateToken(acct.PasswordHash, token) {
		log.Info("登入失敗：密碼錯誤", zap.String("user", username))
		return loginBadPass
	}
	if acct.Banned {
		log.Info("登入失敗：帳號停權", zap.String("user", username))
		return loginBanned
	}
	if acct.Online {
		log.Info("登入失敗：帳號已上線", zap.String("user", username))
		return loginAlreadyOnline
	}

	if err := s.accounts.RecordLogin(ctx, username, ip); err != nil {
		log.Error("登入紀錄失敗", zap.String("user", username), zap.Error(err))
		return loginBadUser
	}
	log.Info("登入成功", zap.String("user", username))
	return loginOK
}

func (s *Server) respond(conn net.Conn, code byte, log *zap.Logger) {
	body := make([]byte, loginBodyLen)
	body[0] = code
	if _, err := conn.Write(append(append([]byte{}, loginHeader...), body...)); err != nil {
		log.Debug("登入回應寫入失敗", zap.Error(err))
	}
}

// readLine reads one null-terminated latin-1 line.
func readLine(br *bufio.Reader) (string, error) {
	raw, err := br.ReadBytes(0)
	if err != nil {
		return "", err
	}
	raw = raw[:len(raw)-1]
	decoded, derr := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if derr != nil {
		return string(raw), nil
	}
	return string(decoded), nil
}

// isHexToken reports whether s is a 32-character lowercase-or-uppercase
// hex string, the md5 digest shape the client sends.
func isHexToken(s string) bool {
	if len(s) != 32 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

func peerHost(conn net.Conn) string {
	addr := conn.RemoteAddr().String()
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
