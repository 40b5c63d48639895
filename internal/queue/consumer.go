package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Mailer delivers a notification out of process. Satisfied by
// notifier.Mailer; nil disables email delivery and keeps the audit log
// only.
type Mailer interface {
    Send(n Notification) error
}

// StartNotificationConsumer connects to RabbitMQ, declares the
// hall.notifications queue (durable), and consumes messages. Each message
// is appended to logs/notifications.log and, when a mailer is configured,
// delivered as an email. The function runs a reconnect loop with
// exponential backoff and keeps running across broker restarts; failed
// messages are rejected without requeue to avoid tight redelivery loops.
func StartNotificationConsumer(mailer Mailer) error {
    url := brokerURL()
    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("notification-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        if err := consumeLoop(conn, mailer); err != nil {
            log.Printf("notification-consumer: consume loop ended: %v; reconnecting", err)
            time.Sleep(2 * time.Second)
        }
    }
}

func consumeLoop(conn *amqp.Connection, mailer Mailer) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("notification-consumer: set QoS failed: %v", err)
    }

    if _, err := ch.QueueDeclare(notificationQueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(notificationQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body, mailer); err != nil {
            log.Printf("notification-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false)
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, mailer Mailer) error {
    var n Notification
    if err := json.Unmarshal(body, &n); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := appendAuditLine(n); err != nil {
        return err
    }
    if mailer != nil && n.RecipientEmail != "" {
        // Email failures are logged, not retried; the audit line already
        // records the notification.
        if err := mailer.Send(n); err != nil {
            log.Printf("notification-consumer: email delivery failed: %v", err)
        }
    }
    return nil
}

func appendAuditLine(n Notification) error {
    if err := os.MkdirAll("logs", 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    path := filepath.Join("logs", "notifications.log")
    f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log: %w", err)
    }
    defer func() { _ = f.Close() }()

    line := fmt.Sprintf("%s kind=%s to=%q(%d) subject=%q request=%d event=%q\n",
        time.Now().UTC().Format(time.RFC3339), n.Kind, n.RecipientName, n.RecipientID,
        n.Subject, n.RequestID, n.EventTitle)
    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}
