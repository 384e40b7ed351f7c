package handler

import (
	"github.com/boutgo/server/internal/net"
	"github.com/boutgo/server/internal/net/packet"
	"github.com/boutgo/server/internal/world"
	"go.uber.org/zap"
)

// HandleConnection runs one session from accept to teardown: resolve the
// account by the peer address the login server recorded, load the
// character, register with the lobby, then block on the read loop until
// the socket dies.
func HandleConnection(sess *net.Session, deps *Deps) {
	ctx := sess.Context()
	log := sess.Log()

	sess.SetState(packet.StateAuthenticating)

	acct, err := deps.Accounts.FindByIP(ctx, sess.IP)
	if err != nil {
		log.Error("帳號查詢失敗", zap.String("ip", sess.IP), zap.Error(err))
		return
	}
	if acct == nil || acct.Banned {
		// No login-server record for this address (or a banned one): the
		// "a" placeholder identity never reaches the lobby.
		log.Warn("未授權連線", zap.String("ip", sess.IP))
		return
	}
	sess.AccountName = acct.Username
	log = log.With(zap.String("account", acct.Username))

	bot := world.NewBot(acct.Username, sess.IP, deps.Characters, deps.Items, log)
	bot.Load(ctx)

	sess.SetState(packet.StateActive)

	if err := deps.Accounts.SetOnline(ctx, acct.Username, true); err != nil {
		log.Warn("上線標記失敗", zap.Error(err))
	}
	defer func() {
		if bot.Exists() {
			deps.Rooms.Leave(bot.Name)
			deps.Lobby.Leave(bot.Name)
		}
		if err := deps.Accounts.SetOnline(ctx, acct.Username, false); err != nil {
			log.Warn("離線標記失敗", zap.Error(err))
		}
	}()

	if bot.Exists() {
		deps.Lobby.Join(bot.Name, bot.Type, sess)
		if deps.Scripts != nil {
			if msg := deps.Scripts.OnLobbyJoin(bot.Name, bot.Type); msg != "" {
				deps.Lobby.Message(msg, 0)
			}
			if motd := deps.Scripts.Motd(); motd != "" {
				deps.Lobby.Message(motd, 0)
			}
		}
	}

	c := &Ctx{Sess: sess, Bot: bot, Deps: deps}
	for {
		cmd, payload, err := sess.Read()
		if err != nil {
			if !sess.IsClosed() {
				log.Info("玩家斷線", zap.Error(err))
			}
			return
		}
		if err := deps.Registry.Dispatch(c, sess.State(), cmd, payload); err != nil {
			log.Warn("封包處理失敗", zap.String("cmd", cmd.String()), zap.Error(err))
		}
	}
}
