// Package console реализует интерактивную терминальную консоль администратора.
//
// Консоль разбирает команды из входного потока, держит состояние экранов
// в контроллерах пакета view и ходит в бэкенд только через клиент adminapi.
// Общего кеша между экранами нет: каждая команда списка перечитывает данные.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mmeshcher/marketplace-admin/internal/adminapi"
	"github.com/mmeshcher/marketplace-admin/internal/view"
)

// Console держит состояние интерактивной сессии администратора.
type Console struct {
	client *adminapi.Client
	logger *zap.Logger
	out    io.Writer
	in     *bufio.Scanner
	limit  int

	screens *screens
	action  view.Action

	// последний показанный экран списка, к нему применяются next и prev
	current pager
}

// New создаёт консоль поверх клиента административного API.
func New(client *adminapi.Client, logger *zap.Logger, in io.Reader, out io.Writer, limit int) *Console {
	c := &Console{
		client: client,
		logger: logger,
		out:    out,
		in:     bufio.NewScanner(in),
		limit:  limit,
	}
	c.screens = newScreens(c)
	return c
}

// Run запускает цикл чтения и выполнения команд до конца входного потока
// или отмены контекста.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "marketadmin console, type 'help' for commands")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}

		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		if err := c.dispatch(ctx, line); err != nil {
			// единственное уведомление об ошибке; состояние экрана не трогается
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
}

func (c *Console) dispatch(ctx context.Context, line string) error {
	args := strings.Fields(line)
	cmd := args[0]
	rest := args[1:]

	switch cmd {
	case "help":
		c.printHelp()
		return nil
	case "users":
		return c.screens.usersCommand(ctx, rest)
	case "user":
		return c.screens.userDetail(ctx, rest)
	case "merchants":
		return c.screens.merchantsCommand(ctx, rest)
	case "merchant":
		return c.screens.merchantDetail(ctx, rest)
	case "orders":
		return c.screens.ordersCommand(ctx, rest)
	case "order":
		return c.screens.orderDetail(ctx, rest)
	case "categories":
		return c.screens.categoriesCommand(ctx, rest)
	case "requests":
		return c.screens.categoryRequestsCommand(ctx, rest)
	case "withdrawals":
		return c.screens.withdrawalsCommand(ctx, rest)
	case "audit":
		return c.screens.auditCommand(ctx, rest)
	case "settings":
		return c.screens.settingsCommand(ctx, rest)
	case "stats":
		return c.screens.statsCommand(ctx)
	case "analytics":
		return c.screens.analyticsCommand(ctx, rest)
	case "next":
		if c.current == nil {
			return fmt.Errorf("no list on screen")
		}
		return c.current.next(ctx)
	case "prev":
		if c.current == nil {
			return fmt.Errorf("no list on screen")
		}
		return c.current.prev(ctx)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
}

func (c *Console) printHelp() {
	fmt.Fprint(c.out, `commands:
  users [--status S] [--role R] [--page N] [--search TEXT]
  users block|unblock|logout <id>
  user <id>
  merchants [--status S] [--page N] [--search TEXT]
  merchants approve|reject|suspend <id>
  merchant <id>
  orders [--status S] [--customer ID] [--from YYYY-MM-DD] [--to YYYY-MM-DD] [--page N]
  order <id>
  categories [create <name> [parent-id] | toggle <id> | delete <id>]
  requests [--status S] | requests approve|reject <id>
  withdrawals [--status S] [--search TEXT] | withdrawals approve|reject <id>
  audit [--action A] [--target T] [--page N]
  settings | settings set <key> <value>
  stats
  analytics sales [days] | analytics categories | analytics products [n]
  next | prev
  exit
`)
}

// prompt выводит приглашение и читает одну строку ответа.
func (c *Console) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return ""
	}
	return c.in.Text()
}

// flagSet разбирает хвост команды на флаги вида --name value и позиционные слова.
type flagSet struct {
	values     map[string]string
	positional []string
}

func parseFlags(args []string) flagSet {
	fs := flagSet{values: make(map[string]string)}
	for i := 0; i < len(args); i++ {
		name, ok := strings.CutPrefix(args[i], "--")
		if !ok {
			fs.positional = append(fs.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			fs.values[name] = args[i+1]
			i++
		} else {
			fs.values[name] = ""
		}
	}
	return fs
}

func (f flagSet) get(name string) string {
	return f.values[name]
}

func (f flagSet) page() int {
	n, err := strconv.Atoi(f.values["page"])
	if err != nil || n < 1 {
		return 1
	}
	return n
}
