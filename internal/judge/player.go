package judge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"

	"github.com/sirupsen/logrus"

	"gomori/engine"
)

// Player is a running bot subprocess. Requests go to its stdin, one
// JSON line each, and every request is answered by one JSON line on its
// stdout.
type Player struct {
	Name string

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
}

// StartPlayer spawns the player process described by the config.
func StartPlayer(config PlayerConfig) (*Player, error) {
	cmd := exec.Command(config.Cmd[0], config.Cmd[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn player process %v: %w", config.Cmd, err)
	}
	logrus.WithFields(logrus.Fields{"player": config.Nick, "cmd": config.Cmd}).Info("spawned player process")

	return &Player{
		Name:   config.Nick,
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
	}, nil
}

// Perform sends one request and decodes the player's answer into
// response.
func (p *Player) Perform(recorder *Recorder, req *engine.Request, response any) error {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"player": p.Name, "request": string(reqJSON)}).Trace("sending request")
	if _, err := p.stdin.Write(append(reqJSON, '\n')); err != nil {
		return fmt.Errorf("send request to %q: %w", p.Name, err)
	}

	line, err := p.stdout.ReadString('\n')
	if err != nil {
		return fmt.Errorf("read response from %q: %w", p.Name, err)
	}
	if err := json.Unmarshal([]byte(line), response); err != nil {
		return fmt.Errorf("parse response %q from %q: %w", line, p.Name, err)
	}
	logrus.WithFields(logrus.Fields{"player": p.Name, "response": line}).Trace("received response")

	if recorder != nil {
		recorder.StoreExchange(p.Name, json.RawMessage(reqJSON), json.RawMessage(line))
	}
	return nil
}

// Close says goodbye to the player and waits for the process to exit.
// Bye is not answered, so it is sent without reading a response.
func (p *Player) Close() error {
	bye, _ := json.Marshal(engine.Request{Type: engine.RequestBye})
	_, writeErr := p.stdin.Write(append(bye, '\n'))
	if err := p.stdin.Close(); err != nil && writeErr == nil {
		writeErr = err
	}
	if err := p.cmd.Wait(); err != nil && writeErr == nil {
		writeErr = err
	}
	return writeErr
}
