package discord

import (
	"fmt"
	"time"

	"github.com/assist-by/quant/internal/domain"
	"github.com/assist-by/quant/internal/notification"
)

// SendSignal은 시그널 알림을 전송합니다
func (c *Client) SendSignal(signal *domain.Signal, price float64) error {
	var emoji string
	switch signal.Side {
	case domain.Buy:
		emoji = "🚀"
	case domain.Sell:
		emoji = "🔻"
	default:
		emoji = "⚠️"
	}

	embed := NewEmbed().
		SetTitle(fmt.Sprintf("%s %s %s", emoji, signal.Side, signal.Instrument.Symbol)).
		SetDescription(fmt.Sprintf("**가격**: $%.2f\n**강도**: %.1f\n**거래소 코드**: %s",
			price, signal.Strength, signal.Instrument.ExchangeCode)).
		SetColor(notification.GetColorForSide(signal.Side)).
		SetFooter("Assist by Quant 🤖").
		SetTimestamp(time.Now())

	msg := WebhookMessage{
		Embeds: []Embed{*embed},
	}

	return c.sendToWebhook(c.signalWebhook, msg)
}

// SendError는 에러 알림을 전송합니다
func (c *Client) SendError(err error) error {
	embed := NewEmbed().
		SetTitle("에러 발생").
		SetDescription(fmt.Sprintf("```%v```", err)).
		SetColor(notification.ColorError).
		SetFooter("Assist by Quant 🤖").
		SetTimestamp(time.Now())

	msg := WebhookMessage{
		Embeds: []Embed{*embed},
	}

	return c.sendToWebhook(c.errorWebhook, msg)
}

// SendInfo는 일반 정보 알림을 전송합니다
func (c *Client) SendInfo(message string) error {
	embed := NewEmbed().
		SetDescription(message).
		SetColor(notification.ColorInfo).
		SetFooter("Assist by Quant 🤖").
		SetTimestamp(time.Now())

	msg := WebhookMessage{
		Embeds: []Embed{*embed},
	}

	return c.sendToWebhook(c.infoWebhook, msg)
}

// SendTradeInfo는 체결 정보를 전송합니다
func (c *Client) SendTradeInfo(info notification.TradeInfo) error {
	embed := NewEmbed().
		SetTitle(fmt.Sprintf("거래 체결: %s", info.Symbol)).
		SetDescription(fmt.Sprintf(
			"**방향**: %s\n**수량**: %.4f\n**가격**: $%.2f\n**실현 손익**: $%.2f\n**현금 잔고**: $%.2f",
			info.Side, info.Quantity, info.Price, info.RealizedPnL, info.Cash,
		)).
		AddField("주문 ID", info.OrderID, true).
		SetColor(notification.GetColorForSide(info.Side)).
		SetFooter("Assist by Quant 🤖").
		SetTimestamp(time.Now())

	msg := WebhookMessage{
		Embeds: []Embed{*embed},
	}

	return c.sendToWebhook(c.tradeWebhook, msg)
}
