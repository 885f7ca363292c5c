package server

// ClientScript keeps the browser in sync with the served document. It is
// injected before </body> in every snapshot.
const ClientScript = `<script>
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var ws = null;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        ws = new WebSocket(protocol + '//' + location.host + '/_vnest/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            switch (msg.type) {
                case 'body':
                    document.body.innerHTML = msg.html;
                    break;
                case 'head':
                    document.head.innerHTML = msg.html;
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    document.addEventListener('click', function(e) {
        var el = e.target.closest('[id]');
        if (!el || !ws || ws.readyState !== 1) {
            return;
        }
        e.preventDefault();
        ws.send(JSON.stringify({type: 'click', id: el.id}));
    });

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>
`
